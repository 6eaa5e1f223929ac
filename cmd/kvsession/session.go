package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var errNotFound = errors.New("session not found")

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Print the record stored for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID := args[0]

			record, err := a.store.Get(cmd.Context(), sessionID)
			if err != nil {
				return fmt.Errorf("error loading session '%s': %w", sessionID, err)
			}
			if record == nil {
				return fmt.Errorf("%w: '%s'", errNotFound, sessionID)
			}

			data, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshaling record: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [session-id] <record-json>",
		Short: "Write a session record",
		Long:  `Writes a record such as {"cookie":{"path":"/"},"data":{}}. Without a session id a random one is generated and printed.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, raw := uuid.NewString(), args[0]
			if len(args) == 2 {
				sessionID, raw = args[0], args[1]
			}

			var record domain.Record
			if err := json.Unmarshal([]byte(raw), &record); err != nil {
				return fmt.Errorf("invalid record JSON: %w", err)
			}

			ttl, _ := cmd.Flags().GetDuration("ttl")
			if ttl <= 0 {
				ttl = store.Infinity
			}

			if err := a.store.Set(cmd.Context(), sessionID, &record, ttl); err != nil {
				return fmt.Errorf("error saving session '%s': %w", sessionID, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), sessionID)
			return nil
		},
	}
	cmd.Flags().Duration("ttl", 0, "Time to live (default: the configured default TTL)")
	return cmd
}

func newTouchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "touch <session-id>...",
		Short: "Reset the expiry of one or more sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetDuration("ttl")
			if ttl <= 0 {
				ttl = store.Infinity
			}

			for _, sessionID := range args {
				if err := a.store.Touch(cmd.Context(), sessionID, ttl); err != nil {
					return fmt.Errorf("error touching '%s': %w", sessionID, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().Duration("ttl", 0, "New time to live (default: the configured default TTL)")
	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <session-id>...",
		Short: "Remove one or more sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasError := false

			for _, sessionID := range args {
				if err := a.store.Destroy(cmd.Context(), sessionID); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", sessionID, err)
					hasError = true
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", sessionID)
				}
			}

			if hasError {
				return errors.New("some sessions could not be removed")
			}
			return nil
		},
	}
}
