package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	repo "github.com/achrafato/MarkDown-App/internal/domain/repository"
	pginfra "github.com/achrafato/MarkDown-App/internal/infrastructure/postgres"
)

var errUserNotFound = errors.New("no user with that email")

func NewUserCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var email string
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a user with all their posts and comments",
		Long: `Hard-delete an account by e-mail. The user's posts, the comments on
those posts and the user's own comments elsewhere are removed with it.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := opts.openPool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()
			return deleteUser(cmd.Context(), pginfra.NewUserRepository(pool), email, cmd.OutOrStdout())
		},
	}
	del.Flags().StringVar(&email, "email", "", "e-mail of the account to delete")
	_ = del.MarkFlagRequired("email")
	cmd.AddCommand(del)

	return cmd
}

func deleteUser(ctx context.Context, users repo.UserRepository, email string, out io.Writer) error {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("%w: %s", errUserNotFound, email)
	}
	removed, err := users.Delete(ctx, u.ID)
	if err != nil {
		return err
	}
	if !removed {
		// deleted concurrently
		return fmt.Errorf("%w: %s", errUserNotFound, email)
	}
	fmt.Fprintf(out, "deleted user %s (id=%d)\n", email, u.ID)
	return nil
}
