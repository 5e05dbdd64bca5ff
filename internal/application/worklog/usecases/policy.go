package usecases

import (
	"context"
	"fmt"

	"worklog/internal/domain/tracker"
	"worklog/internal/domain/worklog"
	"worklog/internal/shared/biztime"
)

// canStart evaluates the start-work policy in strict order, short-circuiting
// on the first failing check. It returns (false, reason) for business-rule
// rejections; the error return is reserved for storage failures.
//
// Check order:
//  1. the user is logged in
//  2. the ticket status allows work
//  3. nobody holds the ticket open (not even the user themself)
//  4. the user has no other open task in the project, unless task
//     switching is allowed
//  5. the user owns the ticket, unless auto-reassignment is enabled
func canStart(
	ctx context.Context,
	repo worklog.Repository,
	settings worklog.Settings,
	username string,
	t *tracker.Ticket,
) (bool, string, error) {
	if username == "" || username == worklog.AnonymousUser {
		return false, "You need to be logged in to work on tickets.", nil
	}

	if !settings.IsEligibleStatus(t.Status) {
		return false, fmt.Sprintf("You cannot work on a ticket with status %q.", t.Status), nil
	}

	open, err := repo.FindOpen(ctx, t.ID)
	if err != nil {
		return false, "", err
	}
	if open != nil {
		if open.Worker != username {
			return false, fmt.Sprintf("Another user (%s) has been working on ticket #%d since %s.",
				open.Worker, t.ID, biztime.FormatUnix(open.Since)), nil
		}
		// An idempotent double start is rejected, not silently accepted.
		return false, fmt.Sprintf("You are already working on ticket #%d.", t.ID), nil
	}

	if !settings.AllowTaskSwitch {
		active, err := activeTask(ctx, repo, username, t.ProjectID)
		if err != nil {
			return false, "", err
		}
		if active != nil {
			return false, fmt.Sprintf("You cannot work on ticket #%d as you are currently working on ticket #%d.",
				t.ID, active.TicketID()), nil
		}
	}

	if !settings.AutoReassignOnStart && !t.IsOwnedBy(username) {
		return false, fmt.Sprintf("You cannot work on ticket #%d as you are not the owner. You should speak to %s.",
			t.ID, t.Owner), nil
	}

	return true, "", nil
}

// activeTask returns the worker's latest entry in the project if and only
// if it is still open. A closed latest task is not active.
func activeTask(ctx context.Context, repo worklog.Repository, username string, projectID uint) (*worklog.Entry, error) {
	if username == "" || username == worklog.AnonymousUser {
		return nil, nil
	}

	latest, err := repo.LatestForWorker(ctx, username, projectID)
	if err != nil {
		return nil, err
	}
	if latest == nil || !latest.IsOpen() {
		return nil, nil
	}
	return latest, nil
}
