package swodlrcli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

// paramSpec describes one query parameter of a command: its dashed CLI
// spelling, whether it is a required positional argument, and its default
// value (empty means no default).
type paramSpec struct {
	name       string
	usage      string
	value      string
	positional bool
}

var getUsersProductsParams = []paramSpec{
	{name: "username", positional: true, usage: "EDL username whose products to list"},
	{name: "cycle"},
	{name: "pass"},
	{name: "scene"},
	{name: "output-granule-extent-flag"},
	{name: "output-sampling-grid-type"},
	{name: "raster-resolution"},
	{name: "utm-zone-adjust"},
	{name: "mgrs-band-adjust"},
	{name: "before-timestamp"},
	{name: "after-timestamp"},
	{name: "after-id", usage: "Used for pagination; the last product id from the last page"},
	{name: "limit", value: "10", usage: "The number of results to return"},
}

// invalidate-product accepts --limit even though invalidation by id has no
// notion of a page size. The flag has always been there and scripts pass it,
// so it stays and is sent through like every other parameter.
var invalidateProductParams = []paramSpec{
	{name: "id", positional: true, usage: "The product id to invalidate"},
	{name: "limit", value: "10", usage: "The number of results to return"},
}

// search-products has no default for --limit, unlike get-users-products; the
// service applies its own page size when the variable is null.
var searchProductsParams = []paramSpec{
	{name: "cycle"},
	{name: "pass"},
	{name: "scene"},
	{name: "output-granule-extent-flag"},
	{name: "output-sampling-grid-type"},
	{name: "raster-resolution"},
	{name: "utm-zone-adjust"},
	{name: "mgrs-band-adjust"},
	{name: "after-id", usage: "Used for pagination; the last product id from the last page"},
	{name: "limit", usage: "The number of results to return"},
}

// CLIBuilder creates CLI commands for the SWODLR GraphQL operations
type CLIBuilder struct {
	config    *Config
	formatReg FormatterRegistry

	// seams for tests
	login   func(ctx context.Context) (string, error)
	execute func(ctx context.Context, cfg *Config, doc *Document, variables map[string]interface{}) (map[string]interface{}, error)
}

// NewCLIBuilder creates a new CLI command builder
func NewCLIBuilder(cfg *Config) *CLIBuilder {
	edl := NewEDLClient()

	return &CLIBuilder{
		config:    cfg,
		formatReg: NewFormatterRegistry(),
		login:     edl.Login,
		execute: func(ctx context.Context, cfg *Config, doc *Document, variables map[string]interface{}) (map[string]interface{}, error) {
			return NewHTTPClient(cfg).Execute(ctx, doc, variables)
		},
	}
}

// NewApp returns the swodlr CLI application with all commands registered.
func (b *CLIBuilder) NewApp() *cli.App {
	app := &cli.App{
		Name:  "swodlr",
		Usage: "Query and manage on-demand SWOT raster products",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "The SWODLR environment to run commands against (ops, uat, sit)",
				Value: "ops",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, compact, toon",
				Value:   b.config.Format,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug mode (logs HTTP requests/responses)",
			},
		},
		CommandNotFound: func(c *cli.Context, command string) {
			fmt.Fprintf(c.App.Writer, "unknown command %q\n\n", command)
			_ = cli.ShowAppHelp(c)
		},
	}

	b.RegisterCommands(app)
	return app
}

// GetUsersProductsCommand returns the get-users-products subcommand
func (b *CLIBuilder) GetUsersProductsCommand() *cli.Command {
	return &cli.Command{
		Name: "get-users-products",
		Usage: "Get a user's products by their EDL username; optionally apply " +
			"filters to the query",
		ArgsUsage: "<username>",
		Flags:     flagsFor(getUsersProductsParams),
		Action: func(c *cli.Context) error {
			return b.run(c, "get-users-products", getUsersProductsParams)
		},
	}
}

// GetInvalidateProductCommand returns the invalidate-product subcommand
func (b *CLIBuilder) GetInvalidateProductCommand() *cli.Command {
	return &cli.Command{
		Name: "invalidate-product",
		Usage: "Invalidate a product by product id; allows the product to be " +
			"regenerated regardless of current product status by transitioning " +
			"the product to UNAVAILABLE",
		ArgsUsage: "<id>",
		Flags:     flagsFor(invalidateProductParams),
		Action: func(c *cli.Context) error {
			return b.run(c, "invalidate-product", invalidateProductParams)
		},
	}
}

// GetSearchProductsCommand returns the search-products subcommand
func (b *CLIBuilder) GetSearchProductsCommand() *cli.Command {
	return &cli.Command{
		Name: "search-products",
		Usage: "Search for existing products in the cache without generating " +
			"any new products",
		Flags: flagsFor(searchProductsParams),
		Action: func(c *cli.Context) error {
			return b.run(c, "search-products", searchProductsParams)
		},
	}
}

// GetLoginCommand returns the login subcommand
func (b *CLIBuilder) GetLoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate against Earthdata Login and cache the bearer token",
		Action: func(c *cli.Context) error {
			token, err := b.login(c.Context)
			if err != nil {
				return err
			}

			store := NewTokenStore("swodlr")
			if claims, err := store.ParseClaims(token); err == nil && claims.UID != "" {
				fmt.Fprintf(c.App.Writer, "logged in as %s\n", claims.UID)
				return nil
			}
			fmt.Fprintln(c.App.Writer, "logged in")
			return nil
		},
	}
}

// RegisterCommands adds all swodlr commands to the app
func (b *CLIBuilder) RegisterCommands(app *cli.App) {
	app.Commands = append(app.Commands,
		b.GetUsersProductsCommand(),
		b.GetInvalidateProductCommand(),
		b.GetSearchProductsCommand(),
		b.GetLoginCommand(),
	)
}

// run is the shared pipeline behind every query command: collect variables,
// resolve the environment, load the bundled document, authenticate, execute,
// print. Each stage is fatal on failure; nothing prints on error.
func (b *CLIBuilder) run(c *cli.Context, command string, params []paramSpec) error {
	variables, err := collectVariables(c, params)
	if err != nil {
		return err
	}

	url, err := ResolveGraphQLURL(c.String("env"))
	if err != nil {
		return err
	}

	doc, err := LoadDocument(command)
	if err != nil {
		return err
	}

	token, err := b.login(c.Context)
	if err != nil {
		return err
	}

	cfg := *b.config
	cfg.URL = url
	cfg.Token = token
	cfg.Debug = c.Bool("debug")

	result, err := b.execute(c.Context, &cfg, doc, variables)
	if err != nil {
		return err
	}

	return b.outputResult(c, result)
}

// flagsFor builds the string flags for a command's non-positional parameters.
func flagsFor(params []paramSpec) []cli.Flag {
	var flags []cli.Flag
	for _, p := range params {
		if p.positional {
			continue
		}
		flags = append(flags, &cli.StringFlag{
			Name:  p.name,
			Usage: p.usage,
			Value: p.value,
		})
	}
	return flags
}

// collectVariables builds the variables map sent to the server. Every declared
// parameter appears under its underscored name: the supplied string when set,
// the default when one exists, null otherwise. Values pass through untyped;
// the service does its own validation.
//
// Flags may appear before or after positional arguments. cli's flag parsing
// stops at the first positional, so any --flag value pairs left in Args()
// are rebound here.
func collectVariables(c *cli.Context, params []paramSpec) (map[string]interface{}, error) {
	positionals, trailing, err := splitTrailingArgs(c.Args().Slice(), params)
	if err != nil {
		return nil, err
	}

	variables := make(map[string]interface{}, len(params))
	pos := 0

	for _, p := range params {
		key := strings.ReplaceAll(p.name, "-", "_")

		if p.positional {
			if pos >= len(positionals) {
				return nil, fmt.Errorf("%s is required", p.name)
			}
			variables[key] = positionals[pos]
			pos++
			continue
		}

		if v, ok := trailing[p.name]; ok {
			variables[key] = v
			continue
		}

		switch {
		case c.IsSet(p.name):
			variables[key] = c.String(p.name)
		case p.value != "":
			variables[key] = p.value
		default:
			variables[key] = nil
		}
	}

	return variables, nil
}

// splitTrailingArgs separates the arguments cli left unparsed into positional
// values and --flag value overrides. A later occurrence of a flag wins over
// one parsed before the positionals, matching flag's last-one-wins rule.
func splitTrailingArgs(args []string, params []paramSpec) ([]string, map[string]string, error) {
	known := make(map[string]bool)
	for _, p := range params {
		if !p.positional {
			known[p.name] = true
		}
	}

	var positionals []string
	trailing := make(map[string]string)

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") {
			positionals = append(positionals, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		value := ""
		hasValue := false
		if idx := strings.Index(name, "="); idx >= 0 {
			name, value, hasValue = name[:idx], name[idx+1:], true
		}
		if !known[name] {
			return nil, nil, fmt.Errorf("flag provided but not defined: -%s", name)
		}
		if !hasValue {
			i++
			if i >= len(args) {
				return nil, nil, fmt.Errorf("flag needs an argument: -%s", name)
			}
			value = args[i]
		}
		trailing[name] = value
	}

	return positionals, trailing, nil
}

func (b *CLIBuilder) outputResult(c *cli.Context, result map[string]interface{}) error {
	formatter, err := b.formatReg.Get(c.String("format"))
	if err != nil {
		// Fallback to JSON if format not found
		formatter, _ = b.formatReg.Get("json")
	}

	output, err := formatter.Format(result)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, output)
	return nil
}
