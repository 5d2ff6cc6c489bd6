package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"io"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/auth"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/store"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database and the first admin account",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app) error {
			n, err := store.CountAdmins(ctx, a.db)
			if err != nil {
				return err
			}
			if n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Database %s already has an admin account.\n", a.cfg.DB)
				return nil
			}

			password, err := createAdmin(ctx, a.db, a.cfg.Admin.User)
			if err != nil {
				return err
			}
			printAdmin(cmd.OutOrStdout(), a.cfg.DB, a.cfg.Admin.User, password)
			return nil
		}),
	}
	cmd.Flags().StringP("admin-user", "u", "", "admin username (default: Admin)")
	return cmd
}

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Archive stale found items and long-unsolved lost reports now",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app) error {
			rep, err := a.svc.Sweep(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stale cutoff:     %s\n", rep.StaleCutoff)
			fmt.Fprintf(out, "Expired (found):  %d\n", rep.Expired)
			fmt.Fprintf(out, "Unsolved (lost):  %d\n", rep.Unsolved)
			fmt.Fprintf(out, "Skipped:          %d\n", rep.Skipped)
			fmt.Fprintf(out, "Tokens purged:    %d\n", rep.TokensPurged)
			return nil
		}),
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard figures",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app) error {
			stats, err := a.svc.Stats(ctx)
			if err != nil {
				return err
			}
			last, err := a.svc.LastSweep(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pending:     %d\n", stats.Pending)
			fmt.Fprintf(out, "Resolved:    %d\n", stats.Resolved)
			fmt.Fprintf(out, "Total items: %d\n", stats.TotalItems)
			if last.IsZero() {
				fmt.Fprintln(out, "Last sweep:  never")
			} else {
				fmt.Fprintf(out, "Last sweep:  %s\n", last.Local().Format("2006-01-02 15:04"))
			}
			return nil
		}),
	}
}

// createAdmin creates an admin account with a generated password.
func createAdmin(ctx context.Context, database *sql.DB, username string) (string, error) {
	password, err := generatePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	if _, err := store.CreateUser(ctx, database, username, hash, model.RoleAdmin); err != nil {
		return "", fmt.Errorf("creating admin user: %w", err)
	}
	return password, nil
}

// printAdmin prints the new admin credentials.
func printAdmin(w io.Writer, dbPath, username, password string) {
	fmt.Fprintf(w, "Database: %s\n", dbPath)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Admin account created:")
	fmt.Fprintf(w, "  Username: %s\n", username)
	fmt.Fprintf(w, "  Password: %s\n", password)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Save this password. It cannot be recovered.")
	fmt.Fprintln(w, "The admin can change it after logging in.")
	fmt.Fprintln(w)
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
