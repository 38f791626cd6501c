/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/suparena/tablestore/activitylog"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/pagination"
)

func newActivityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Write and read activity logs",
	}
	cmd.AddCommand(newActivityLogCmd(a), newActivityListCmd(a))
	return cmd
}

type logOutput struct {
	ActivityID string   `json:"activityId,omitempty"`
	Written    int      `json:"written"`
	Errors     []string `json:"errors,omitempty"`
}

func newActivityLogCmd(a *app) *cobra.Command {
	var e activitylog.Entity
	var activityType string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record an activity for a user and/or a hackathon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.activities(cmd.Context())
			if err != nil {
				return err
			}
			e.ActivityType = activitylog.Type(activityType)
			res := svc.LogActivity(cmd.Context(), &e)

			out := logOutput{ActivityID: res.ActivityID, Written: res.Written()}
			for _, o := range res.Outcomes {
				if o.Err != nil {
					out.Errors = append(out.Errors, fmt.Sprintf("%s %s: %v", o.Category, o.PartitionKey, o.Err))
				}
			}
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if len(res.Outcomes) > 0 && res.Written() == 0 {
				return fmt.Errorf("no copy of the activity was written: %w", res.Err())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&activityType, "type", "", "activity type, e.g. createTeam")
	cmd.Flags().StringVar(&e.UserID, "user", "", "id of the user who performed the activity")
	cmd.Flags().StringVar(&e.HackathonName, "hackathon", "", "hackathon the activity belongs to")
	cmd.Flags().StringVar(&e.TeamID, "team", "", "team the activity concerns")
	cmd.Flags().StringVar(&e.CorrelatedUserID, "correlated-user", "", "id of the user the activity was performed on")
	cmd.Flags().StringVar(&e.Message, "message", "", "message; rendered from the type's format when empty")
	cmd.Flags().StringArrayVar(&e.Args, "arg", nil, "message argument, repeatable; fills {0}, {1}, ...")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newActivityListCmd(a *app) *cobra.Command {
	var (
		hackathon, user, since string
		top, np, nr            string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of activities as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := pagination.Decode(top, np, nr)
			if err != nil {
				return err
			}
			opts := activitylog.QueryOptions{
				HackathonName: strings.TrimSpace(hackathon),
				UserID:        strings.TrimSpace(user),
				Pagination:    page,
			}
			if since != "" {
				if opts.Since, err = time.Parse(time.RFC3339, since); err != nil {
					return errors.NewValidationError("since", "must be an RFC 3339 timestamp")
				}
			}

			svc, err := a.activities(cmd.Context())
			if err != nil {
				return err
			}
			entities, next, err := svc.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			list := activitylog.ToModelList(entities, page, next,
				pagination.P("hackathonName", opts.HackathonName),
				pagination.P("userId", opts.UserID),
				pagination.P("since", since),
			)
			return writeJSON(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().StringVar(&hackathon, "hackathon", "", "list the hackathon's activities")
	cmd.Flags().StringVar(&user, "user", "", "list the user's activities, or narrow --hackathon to one user")
	cmd.Flags().StringVar(&since, "since", "", "only activities at or after this RFC 3339 time")
	cmd.Flags().StringVar(&top, "top", "", "page size, 1-1000")
	cmd.Flags().StringVar(&np, "np", "", "partition half of the continuation cursor")
	cmd.Flags().StringVar(&nr, "nr", "", "row half of the continuation cursor")
	return cmd
}
