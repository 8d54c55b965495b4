package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const keyringService = "ytdigest"

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Store the OpenRouter API key in the OS keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			del, _ := cmd.Flags().GetBool("delete")
			if del {
				if err := keyring.Delete(keyringService, systemUser()); err != nil && !errors.Is(err, keyring.ErrNotFound) {
					return fmt.Errorf("delete API key: %w", err)
				}
				fmt.Fprintln(out, bullet("└")+TextStyle.Render("API key removed from keyring."))
				return nil
			}

			fmt.Fprint(out, bullet("├")+TextStyle.Render("Enter OpenRouter API key: "))
			key, err := readSecret(cmd.InOrStdin())
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("read API key: %w", err)
			}
			if key == "" {
				return errors.New("an API key is required")
			}
			if err := keyring.Set(keyringService, systemUser(), key); err != nil {
				return fmt.Errorf("save API key: %w", err)
			}
			fmt.Fprintln(out, bullet("└")+SuccessStyle.Render("API key saved to keyring."))
			return nil
		},
	}
	cmd.Flags().Bool("delete", false, "Remove the stored key")
	return cmd
}

// readSecret hides input on a terminal and reads one line otherwise.
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// resolveAPIKey checks the environment, then the keyring. An empty result
// means mock mode.
func resolveAPIKey(getenv func(string) string, log logrus.FieldLogger) string {
	if k := strings.TrimSpace(getenv("OPENROUTER_API_KEY")); k != "" {
		return k
	}
	k, err := keyring.Get(keyringService, systemUser())
	switch {
	case err == nil:
		log.Debug("using API key from keyring")
		return strings.TrimSpace(k)
	case errors.Is(err, keyring.ErrNotFound):
		return ""
	default:
		log.WithError(err).Warn("keyring unavailable")
		return ""
	}
}

func systemUser() string {
	for _, k := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(k); u != "" {
			return u
		}
	}
	return "anon"
}
