package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vlist/internal/errors"
	"github.com/vango-dev/vlist/pkg/host"
	"github.com/vango-dev/vlist/pkg/mount"
	"github.com/vango-dev/vlist/pkg/script"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		snapshotName string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "render <script>",
		Short: "Run a patch script and print every step",
		Long: `Run a patch script against a fresh mount.

Each step is patched against the previous one. For every step the
resulting HTML and the host mutations it needed are printed.

Examples:
  vlist render greeting.yaml
  vlist render greeting.yaml --json
  vlist render greeting.yaml --snapshot greeting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("E140").WithExample("vlist render greeting.yaml")
			}
			return runRender(cmd, g, args[0], snapshotName, asJSON)
		},
	}

	cmd.Flags().StringVar(&snapshotName, "snapshot", "", "Store the final HTML under this snapshot name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}

func runRender(cmd *cobra.Command, g *globals, path, snapshotName string, asJSON bool) error {
	ctx := cmd.Context()

	sc, err := script.Load(path)
	if err != nil {
		return err
	}

	m := mount.New(host.NewElement("body"),
		mount.WithLogger(g.logger),
		mount.WithTracerName(g.cfg.Tracing.TracerName),
	)
	results, err := sc.Run(ctx, m)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"name": sc.Name, "steps": results}); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			fmt.Fprintf(out, "── %s (+%d -%d ~%d text, %d attr)\n",
				r.Name, r.Mutations.Inserts, r.Mutations.Removes, r.Mutations.Text, r.Mutations.Attrs)
			fmt.Fprintln(out, r.HTML)
		}
	}

	if snapshotName == "" {
		return nil
	}
	store, err := openStore(g.cfg)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, snapshotName, []byte(m.HTML())); err != nil {
		return errors.New("E171").Wrap(err)
	}
	g.logger.Info("snapshot stored", "name", snapshotName)
	return nil
}
