package cli

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/labelshop/internal/filex"
	"github.com/dmitrijs2005/labelshop/internal/netx"
	"github.com/spf13/cobra"
)

const maxUploadBytes = 10 << 20

// uploadToPresignedURL is a test seam.
var uploadToPresignedURL = netx.UploadToS3PresignedURL

// detectContentType prefers the file extension and falls back to sniffing.
func detectContentType(path string, data []byte) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

func (app *App) uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a cover image and print its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := filex.ReadFileLimited(path, maxUploadBytes)
			if err != nil {
				return err
			}

			up, err := app.client.CreateUpload(cmd.Context(), filepath.Base(path), detectContentType(path, data))
			if err != nil {
				return err
			}
			if err := uploadToPresignedURL(cmd.Context(), up.URL, up.Headers, data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), up.PublicURL)
			return nil
		},
	}
}
