package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wallet_networks/internal/config"
	"wallet_networks/internal/domain"
	"wallet_networks/internal/domain/entity"
	"wallet_networks/internal/infrastructure/network/definition"
	"wallet_networks/internal/infrastructure/network/explorer"
	"wallet_networks/internal/pkg/logger"
	"wallet_networks/internal/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cli struct {
	configPath  string
	forkChainID string
	strict      bool
	output      string

	registry *definition.Registry
	links    *explorer.LinkBuilder
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:               "networks",
		Short:             "Inspect the wallet network registry",
		Version:           fmt.Sprintf("Version: %s\nCommit: %s\nDate: %s", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", utils.GetEnv("CONFIG_PATH", "config/config.yaml"), "path to the YAML config file")
	root.PersistentFlags().StringVar(&c.forkChainID, "fork-chain-id", "", "chain id of the local mainnet fork (overrides config and "+config.ForkChainIDEnv+")")
	root.PersistentFlags().BoolVar(&c.strict, "strict", false, "fail on chain id collisions and malformed chain ids")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "table", "output format: table or json")

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every network in declaration order",
			Args:  cobra.NoArgs,
			RunE:  c.list,
		},
		&cobra.Command{
			Use:   "show <chainId>",
			Short: "Show the network registered under a chain id",
			Args:  cobra.ExactArgs(1),
			RunE:  c.show,
		},
		&cobra.Command{
			Use:   "classify <chainId>",
			Short: "Report EIP-1559 and rollup classification of a chain id",
			Args:  cobra.ExactArgs(1),
			RunE:  c.classify,
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check the network table invariants",
			Args:  cobra.NoArgs,
			RunE:  c.validate,
		},
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.output != "table" && c.output != "json" {
		return fmt.Errorf("unsupported output format %q", c.output)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fork-chain-id") {
		cfg.Registry.ForkChainID = &c.forkChainID
	}
	if c.strict {
		cfg.Registry.StrictChainIDs = true
	}

	cfg.Logging.Output = "stderr"
	zapLogger, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}

	c.registry, err = definition.NewRegistry(definition.Options{
		ForkChainIDOverride: cfg.Registry.ForkChainID,
		StrictChainIDs:      cfg.Registry.StrictChainIDs,
	}, logger.NewSlogAdapter(zapLogger.Named("NetworkRegistry")))
	if err != nil {
		zapLogger.Error("Network registry rejected", zap.Error(err))
		return err
	}
	c.links = explorer.NewLinkBuilder(c.registry)
	return nil
}

func (c *cli) list(cmd *cobra.Command, _ []string) error {
	networks := c.registry.ListNetworks()
	if c.output == "json" {
		return writeJSON(cmd.OutOrStdout(), networks)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFAMILY\tCHAIN ID\tASSET\tCOINGECKO\tEIP-1559\tROLLUP")
	for _, n := range networks {
		chainID := n.ChainID
		if chainID == "" {
			chainID = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%t\n",
			n.Name, n.Family, chainID, n.BaseAsset.Symbol, n.CoingeckoPlatformID,
			n.IsEVM() && c.registry.IsEIP1559Compliant(n.ChainID),
			n.IsEVM() && c.registry.IsRollup(n.ChainID))
	}
	return w.Flush()
}

func (c *cli) show(cmd *cobra.Command, args []string) error {
	n, ok := c.registry.NetworkByChainID(args[0])
	if !ok {
		return fmt.Errorf("%w: Unknown network %q", domain.ErrUnknownNetwork, args[0])
	}
	site, hasExplorer := c.links.Website(n.ChainID)

	if c.output == "json" {
		out := struct {
			entity.Network
			Explorer *entity.ScanWebsite `json:"explorer,omitempty"`
		}{Network: n}
		if hasExplorer {
			out.Explorer = &site
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", n.Name)
	fmt.Fprintf(w, "Family:\t%s\n", n.Family)
	fmt.Fprintf(w, "Chain ID:\t%s\n", n.ChainID)
	fmt.Fprintf(w, "Base asset:\t%s (%s, %d decimals)\n", n.BaseAsset.Symbol, n.BaseAsset.Name, n.BaseAsset.Decimals)
	fmt.Fprintf(w, "CoinGecko platform:\t%s\n", n.CoingeckoPlatformID)
	if hasExplorer {
		fmt.Fprintf(w, "Explorer:\t%s (%s)\n", site.Title, site.URL)
	}
	return w.Flush()
}

func (c *cli) classify(cmd *cobra.Command, args []string) error {
	chainID := args[0]
	_, known := c.registry.NetworkByChainID(chainID)
	result := struct {
		ChainID string `json:"chainId"`
		Known   bool   `json:"known"`
		EIP1559 bool   `json:"eip1559"`
		Rollup  bool   `json:"rollup"`
	}{
		ChainID: chainID,
		Known:   known,
		EIP1559: c.registry.IsEIP1559Compliant(chainID),
		Rollup:  c.registry.IsRollup(chainID),
	}

	if c.output == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "chainId=%s known=%t eip1559=%t rollup=%t\n",
		result.ChainID, result.Known, result.EIP1559, result.Rollup)
	return err
}

func (c *cli) validate(cmd *cobra.Command, _ []string) error {
	problems := definition.Validate(c.registry.ListNetworks())
	if len(problems) == 0 {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "OK: %d networks, fork chain id %s\n",
			len(c.registry.ListNetworks()), c.registry.ForkChainID())
		return err
	}

	lines := make([]string, 0, len(problems))
	for _, p := range problems {
		lines = append(lines, "  - "+p.Error())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d problem(s):\n%s\n", len(problems), strings.Join(lines, "\n"))
	return errors.Join(problems...)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
