package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/observability"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
	"github.com/jonathan/job-tracker/internal/types"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage the document library and attachments",
	Long: `Documents are uploaded into a library of unattached files. Attaching moves a
document from the library onto an application; detaching moves it back.`,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Add a file to the document library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}

		req := types.DocumentUploadRequest{
			Name:     docName,
			Type:     types.DocumentType(docType),
			MimeType: docMime,
			Content:  content,
		}
		if req.Name == "" {
			req.Name = filepath.Base(args[0])
		}

		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			doc, err := tracker.NewLibrary(kv).Upload(ctx, req)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%s, %s)\n", doc.ID, doc.Name, observability.FormatSize(doc.Size))
			return nil
		})
	},
}

var documentAttachCmd = &cobra.Command{
	Use:   "attach <document-id> <application-id>",
	Short: "Move a library document onto an application",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			if err := tracker.New(kv).AttachDocument(ctx, args[1], args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Attached %s to %s\n", args[0], args[1])
			return nil
		})
	},
}

var documentDetachCmd = &cobra.Command{
	Use:   "detach <application-id> <document-id>",
	Short: "Move a document from an application back to the library",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			if err := tracker.New(kv).DetachDocument(ctx, args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Detached %s from %s\n", args[1], args[0])
			return nil
		})
	},
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the unattached documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			docs, err := tracker.NewLibrary(kv).List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				_, _ = fmt.Fprintln(out, "Library is empty")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tTYPE\tMIME\tSIZE\tUPLOADED")
			for _, d := range docs {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					d.ID, d.Name, d.Type, dash(d.MimeType), observability.FormatSize(d.Size), types.FormatDate(d.UploadDate))
			}
			return w.Flush()
		})
	},
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete <document-id>",
	Short: "Delete a document from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			if err := tracker.NewLibrary(kv).Delete(ctx, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted document %s\n", args[0])
			return nil
		})
	},
}

var (
	docName string
	docType string
	docMime string
)

func init() {
	f := documentUploadCmd.Flags()
	f.StringVar(&docName, "name", "", "Display name (default the file name)")
	f.StringVar(&docType, "type", string(types.DocumentOther), "resume, cover-letter, portfolio or other")
	f.StringVar(&docMime, "mime", "", "MIME type (default sniffed from the content)")

	documentCmd.AddCommand(documentUploadCmd, documentAttachCmd, documentDetachCmd, documentListCmd, documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}
