package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"massnet.org/hashlookup/crypto/sha256"
	"massnet.org/hashlookup/logging"
	"massnet.org/hashlookup/matcher"
	"massnet.org/hashlookup/wordlist"
)

var (
	flagLibrary string
	flagWorkers int
)

type digestResult struct {
	Message string `json:"message"`
	Sha256  string `json:"sha256"`
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			logging.CPrint(logging.ERROR, "wrong argument count", logging.LogFormat{"count": len(args)})
			return err
		}
		return nil
	}
}

// sumCmd represents the sum command
var sumCmd = &cobra.Command{
	Use:   "sum <message>",
	Short: "Print the SHA-256 digest of a message",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.CPrint(logging.INFO, "sum called", logging.LogFormat{"length": len(args[0])})
		_, err := fmt.Fprintln(cmd.OutOrStdout(), sha256.Compute(args[0]))
		return err
	},
}

// hashCmd represents the hash command
var hashCmd = &cobra.Command{
	Use:   "hash <message>",
	Short: "Ask the API for the SHA-256 digest of a message",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.CPrint(logging.INFO, "hash called", logging.LogFormat{"api_url": config.APIURL})

		resp := &digestResult{}
		if err := ClientCall("/sha256", map[string]string{"message": args[0]}, resp); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt <hash>",
	Short: "Find the word behind a digest",
	Long: `Find the first word of a word list whose SHA-256 digest equals <hash>.
With --library the list is searched locally, otherwise the API is asked.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if flagLibrary == "" {
			logging.CPrint(logging.INFO, "remote decrypt called", logging.LogFormat{"api_url": config.APIURL})
			resp := &digestResult{}
			if err := ClientCall("/decrypt", map[string]string{"hash": target}, resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		}

		logging.CPrint(logging.INFO, "local decrypt called", logging.LogFormat{"library": flagLibrary})
		word, err := decryptLocal(context.Background(), flagLibrary, flagWorkers, target)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), &digestResult{Message: word, Sha256: target})
	},
}

func decryptLocal(ctx context.Context, path string, workers int, target string) (string, error) {
	lib, err := wordlist.Load(path, 0)
	if err != nil {
		return "", err
	}
	m, err := matcher.New(matcher.Config{Workers: workers})
	if err != nil {
		return "", err
	}
	defer m.Close()
	return m.Find(ctx, target, lib)
}
