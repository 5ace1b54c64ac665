// Treedump CLI - decodes cached trees and prints them for debugging
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/config"
	"github.com/kestrel-lang/kestrel/core"
	"github.com/kestrel-lang/kestrel/rewriter"
	"github.com/kestrel-lang/kestrel/treecache"

	_ "github.com/tliron/commonlog/simple"
)

type options struct {
	raw         bool
	rewrite     bool
	fromCache   bool
	showMetrics bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.raw, "raw", false, "Print the raw node structure instead of pseudo-source")
	flag.BoolVar(&opts.rewrite, "rewrite", false, "Run the rewrite passes before printing")
	flag.BoolVar(&opts.fromCache, "cache", false, "Treat arguments as source paths and load their trees from the cache")
	flag.BoolVar(&opts.showMetrics, "metrics", false, "Print node construction counters after processing")
	verbosity := flag.Int("v", 0, "Log verbosity (0 = quiet)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: treedump [options] <file>...\n\n")
		fmt.Fprintf(os.Stderr, "Decodes serialized trees and prints them.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  treedump widget.tree             # Print the tree as pseudo-source\n")
		fmt.Fprintf(os.Stderr, "  treedump -raw widget.tree        # Print the raw node structure\n")
		fmt.Fprintf(os.Stderr, "  treedump -rewrite widget.tree    # Desugar first, then print\n")
		fmt.Fprintf(os.Stderr, "  treedump -cache src/widget.krl   # Load src/widget.krl's cached tree\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	commonlog.Configure(*verbosity, nil)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.FindAndLoad(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Debug.Raw {
		opts.raw = true
	}

	if err := dump(os.Stdout, cfg, opts, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dump decodes each path's tree and prints it to w. The cache store,
// when used, is closed before dump returns, on failure included.
func dump(w io.Writer, cfg *config.Config, opts options, paths []string) error {
	gs := core.NewGlobalState()
	counters := ast.NewCounters()

	var store *treecache.Store
	if opts.fromCache {
		s, err := treecache.OpenStore(cfg.CachePath())
		if err != nil {
			return err
		}
		store = s
		defer store.Close()
	}

	for _, path := range paths {
		tree, err := loadTree(gs, store, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if opts.rewrite {
			ctx := core.NewMutableContext(gs)
			ctx.Metrics = counters
			reg := rewriter.DefaultRegistry().Filter(cfg.Rewriter.Passes)
			tree = rewriter.New(reg).Run(ctx, tree)
		}

		if len(paths) > 1 {
			fmt.Fprintf(w, "== %s\n", path)
		}
		if opts.raw {
			fmt.Fprintln(w, tree.ShowRaw(gs, 0))
		} else {
			fmt.Fprintln(w, tree.ToString(gs, 0))
		}
	}

	if opts.showMetrics {
		fmt.Fprint(w, counters.String())
	}
	return nil
}

// loadTree reads the encoded tree for path, either from a .tree file
// directly or from the cache keyed by the source file's content hash.
func loadTree(gs *core.GlobalState, store *treecache.Store, path string) (ast.Expression, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return treecache.Decode(gs, data)
	}

	sum := sha256.Sum256(data)
	tree, err := store.Get(gs, path, hex.EncodeToString(sum[:]))
	if errors.Is(err, treecache.ErrCacheMiss) {
		return nil, fmt.Errorf("no cached tree for current contents")
	}
	return tree, err
}
