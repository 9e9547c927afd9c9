package cmd

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/group-vault/internal/service"
	"github.com/MKhiriev/group-vault/models"
)

var (
	itemName   string
	itemText   string
	itemLink   string
	itemFile   string
	itemOutput string
	itemForce  bool
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "List, add, remove or open items of a group",
}

var itemListCmd = &cobra.Command{
	Use:   "ls <group>",
	Short: "List the items of a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, err := openGroup(cmd, args[0])
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTYPE\tNAME\tDETAIL")
		for _, it := range group.Items {
			detail := ""
			switch it.Type {
			case models.ItemTypeLink:
				detail = it.URL
			case models.ItemTypeFile:
				detail = fmt.Sprintf("%s, %d bytes", it.MimeType, it.Size)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Type, it.Name, detail)
		}
		return tw.Flush()
	},
}

var itemAddCmd = &cobra.Command{
	Use:   "add <group>",
	Short: "Add a text, link or file item",
	Long: `Add one item to a group. Exactly one of --text, --link or --file is
required. The group passphrase is prompted for.

Examples:
  vault item add Kids --name wifi --text "hunter2"
  vault item add Kids --name school --link https://school.example
  vault item add Kids --file ./passport.pdf`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, upload, err := buildDraft()
		if err != nil {
			return err
		}

		group, err := openGroup(cmd, args[0])
		if err != nil {
			return err
		}

		item, err := app.AddItem(cmd.Context(), group.ID, draft, upload)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s %q (%s)\n", item.Type, item.Name, item.ID)
		return nil
	},
}

var itemRemoveCmd = &cobra.Command{
	Use:     "rm <group> <item-id>",
	Short:   "Remove an item",
	Args:    cobra.ExactArgs(2),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		group, err := openGroup(cmd, args[0])
		if err != nil {
			return err
		}
		if err = app.DeleteItem(cmd.Context(), group.ID, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[1])
		return nil
	},
}

var itemGetCmd = &cobra.Command{
	Use:   "get <group> <item-id>",
	Short: "Show a text or link, or save a file",
	Long: `Open an item. Texts and links are printed. Files are written to
--output, or to their original name in the current directory.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, err := openGroup(cmd, args[0])
		if err != nil {
			return err
		}

		content, err := app.OpenItem(cmd.Context(), group.ID, args[1])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch content.Item.Type {
		case models.ItemTypeLink:
			fmt.Fprintln(w, content.URL)
		case models.ItemTypeText:
			fmt.Fprintln(w, string(content.Data))
		case models.ItemTypeFile:
			path := outputPath(itemOutput, content.Filename, content.Item.ID)
			if err = writeFile(path, content.Data, itemForce); err != nil {
				return err
			}
			fmt.Fprintf(w, "saved %s (%d bytes)\n", path, len(content.Data))
		}
		return nil
	},
}

// openGroup resolves ref and prompts until that group is unlocked.
func openGroup(cmd *cobra.Command, ref string) (models.DecryptedGroup, error) {
	id, err := app.ResolveGroup(ref)
	if err != nil {
		return models.DecryptedGroup{}, err
	}
	if err = unlockUntil(cmd.Context(), cmd.ErrOrStderr(), groupUnlocked(id)); err != nil {
		return models.DecryptedGroup{}, err
	}
	group, ok := app.Group(id)
	if !ok {
		return models.DecryptedGroup{}, service.ErrGroupLocked
	}
	return group, nil
}

func buildDraft() (models.ItemDraft, *models.FileUpload, error) {
	set := 0
	for _, v := range []string{itemText, itemLink, itemFile} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return models.ItemDraft{}, nil, errors.New("exactly one of --text, --link or --file is required")
	}

	switch {
	case itemText != "":
		return models.ItemDraft{Type: models.ItemTypeText, Name: itemName, Content: itemText}, nil, nil
	case itemLink != "":
		name := itemName
		if name == "" {
			name = itemLink
		}
		return models.ItemDraft{Type: models.ItemTypeLink, Name: name, URL: itemLink}, nil, nil
	}

	data, err := os.ReadFile(itemFile)
	if err != nil {
		return models.ItemDraft{}, nil, err
	}
	filename := filepath.Base(itemFile)
	name := itemName
	if name == "" {
		name = filename
	}
	return models.ItemDraft{Type: models.ItemTypeFile, Name: name},
		&models.FileUpload{Filename: filename, MimeType: detectMimeType(filename, data), Data: data},
		nil
}

// detectMimeType prefers the extension and falls back to sniffing.
func detectMimeType(filename string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

func outputPath(output, filename, itemID string) string {
	if output != "" {
		return output
	}
	if base := filepath.Base(filename); base != "." && base != string(filepath.Separator) && base != "" {
		return base
	}
	return itemID
}

func writeFile(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s exists, use --force to overwrite", path)
		}
		return err
	}
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	itemAddCmd.Flags().StringVar(&itemName, "name", "", "item name")
	itemAddCmd.Flags().StringVar(&itemText, "text", "", "note text")
	itemAddCmd.Flags().StringVar(&itemLink, "link", "", "link target")
	itemAddCmd.Flags().StringVar(&itemFile, "file", "", "file to upload")

	itemGetCmd.Flags().StringVarP(&itemOutput, "output", "o", "", "where to save a file item")
	itemGetCmd.Flags().BoolVarP(&itemForce, "force", "f", false, "overwrite an existing file")

	itemCmd.AddCommand(itemListCmd, itemAddCmd, itemRemoveCmd, itemGetCmd)
	rootCmd.AddCommand(itemCmd)
}
