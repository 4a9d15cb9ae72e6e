// Package artshop parses command flags and runs maintenance
// subcommands against the game store.
package artshop

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/louisbranch/artshop/internal/painting"
	"github.com/louisbranch/artshop/internal/platform/config"
	"github.com/louisbranch/artshop/internal/session"
	"github.com/louisbranch/artshop/internal/storage/sqlite"
	"github.com/louisbranch/artshop/internal/valuation"
)

// Config holds artshop command configuration.
type Config struct {
	DBPath      string `env:"ARTSHOP_DB_PATH" envDefault:"artshop.db"`
	OracleURL   string `env:"ARTSHOP_ORACLE_URL"`
	OracleModel string `env:"ARTSHOP_ORACLE_MODEL" envDefault:"gpt-4o-mini"`
	OracleKey   string `env:"ARTSHOP_ORACLE_KEY"`

	// Command is the first positional argument: state, paintings, or
	// reset. Defaults to state.
	Command string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the game database file")
	fs.StringVar(&cfg.OracleURL, "oracle-url", cfg.OracleURL, "Valuation oracle endpoint (empty uses the offline fallback)")
	fs.StringVar(&cfg.OracleModel, "oracle-model", cfg.OracleModel, "Valuation oracle model name")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Command = "state"
	if fs.NArg() > 0 {
		cfg.Command = fs.Arg(0)
	}
	return cfg, nil
}

// Run executes the configured subcommand, writing output to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	var critic valuation.Critic
	if cfg.OracleURL != "" {
		critic = valuation.NewHTTPCritic(valuation.HTTPCriticConfig{
			URL:              cfg.OracleURL,
			Model:            cfg.OracleModel,
			CredentialSecret: cfg.OracleKey,
		})
	}
	valuer := valuation.NewService(critic)

	sess := session.New(store, valuer)
	if err := sess.Start(ctx); err != nil {
		return err
	}

	switch cfg.Command {
	case "state":
		return printState(sess, out)
	case "paintings":
		return printPaintings(ctx, sess, out)
	case "reset":
		if err := sess.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "game reset to a fresh state")
		return nil
	default:
		return fmt.Errorf("unknown command %q (want state, paintings, or reset)", cfg.Command)
	}
}

func printState(sess *session.Session, out io.Writer) error {
	state := sess.State()
	fmt.Fprintf(out, "coins: %d\n", state.Coins)
	fmt.Fprintf(out, "paintings sold: %d\n", state.PaintingCount)
	fmt.Fprintf(out, "total earnings: %d\n", state.TotalEarnings)
	fmt.Fprintf(out, "canvas: %s (%dx%d)\n", state.CurrentCanvasSize.Name, state.CurrentCanvasSize.Width, state.CurrentCanvasSize.Height)
	fmt.Fprintf(out, "unlocked: %d colors, %d brushes, %d canvases\n",
		len(state.UnlockedColors), len(state.UnlockedBrushSizes), len(state.UnlockedCanvasSizes))
	if item, ok := sess.NextUnlock(); ok {
		fmt.Fprintf(out, "next unlock: %s (%d coins)\n", item.Name, item.Price)
	}
	return nil
}

func printPaintings(ctx context.Context, sess *session.Session, out io.Writer) error {
	all, err := sess.Paintings(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "no paintings yet")
		return nil
	}
	for _, p := range all {
		fmt.Fprintf(out, "%s  %s  %s  %s\n",
			p.ID,
			p.CreatedAt.Format("2006-01-02 15:04"),
			p.CanvasSize.Name,
			saleLabel(p))
	}
	return nil
}

func saleLabel(p painting.Painting) string {
	if !p.Sold() {
		return "unsold"
	}
	return fmt.Sprintf("sold for %d", *p.SoldFor)
}
