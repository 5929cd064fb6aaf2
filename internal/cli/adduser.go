package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/szto/foxy-reminder/internal/database"
	"github.com/szto/foxy-reminder/internal/repository/auth_repository"
	"github.com/szto/foxy-reminder/internal/services/auth_services"
)

// AddUserOptions holds flags for the adduser command.
type AddUserOptions struct {
	*RootOptions
	Password string
}

func NewAddUserCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddUserOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "adduser <username>",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return addUser(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Password, "password", "", "password for the new account (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func addUser(opts *AddUserOptions, username string, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	db, err := database.NewConnection(cfg.DBDriver, cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := auth_repository.NewUserRepo(db)
	authSvc := auth_services.NewAuthService(userRepo, cfg.SessionSecret)

	u, err := authSvc.Register(context.Background(), username, opts.Password)
	if err != nil {
		return err
	}

	cmd.Printf("created user %s (id %d)\n", u.Username, u.ID)
	return nil
}
