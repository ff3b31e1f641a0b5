package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uxforge/refit/internal/config"
	"github.com/uxforge/refit/internal/retrieval"
)

func seedCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Index guideline documents for the assistant's guideline lookup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			setupLogging(cfg.LogLevel)
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required to seed the guideline index")
			}

			store, err := retrieval.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect guideline index: %w", err)
			}
			defer store.Close()

			seen := make(map[string]bool)
			added := 0
			skipped := 0
			err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				ext := strings.ToLower(filepath.Ext(path))
				if ext != ".md" && ext != ".txt" {
					return nil
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				for _, chunk := range retrieval.ChunkDocument(d.Name(), string(data)) {
					fp := chunk.Fingerprint()
					if seen[fp] {
						skipped++
						continue
					}
					seen[fp] = true
					if _, err := store.Add(cmd.Context(), chunk.Title, chunk.Body); err != nil {
						return fmt.Errorf("index chunk from %s: %w", path, err)
					}
					added++
				}
				return nil
			})
			if err != nil {
				return err
			}

			total, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("indexed %d chunks (%d duplicates skipped), %d total in index\n", added, skipped, total)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory of guideline documents (.md, .txt)")
	return cmd
}
