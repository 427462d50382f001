package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oakbuilt/renoplan/internal/media"
)

var uploadKind string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a receipt, photo or document to media storage",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadKind, "kind", "documents",
		"Media kind: receipts, photos or documents")
}

func runUpload(cmd *cobra.Command, args []string) error {
	switch uploadKind {
	case "receipts", "photos", "documents":
	default:
		return fmt.Errorf("unknown media kind %q", uploadKind)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	uploader, err := media.NewUploader(cfg.Media)
	if err != nil {
		return err
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	key, err := uploader.Upload(context.Background(), uploadKind,
		filepath.Base(path), contentType, info.Size(), f)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	url, expiry, err := uploader.PresignedURL(context.Background(), key)
	if err != nil {
		return fmt.Errorf("presign: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\nKey: %s\nURL: %s (expires %s)\n",
		path, key, url, expiry.Format("2006-01-02 15:04"))
	return nil
}
