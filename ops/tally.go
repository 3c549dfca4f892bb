// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/TrustTheVote-Project/VTP-spring-demo/db"
	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
)

// TallyContestsOperation tallies contests from one workspace's cast
// vote records and renders a text report.
type TallyContestsOperation struct {
	WorkspaceDir  string
	Verbosity     int
	ContestUIDs   []string
	TrackContests bool
}

type contestTally struct {
	contest models.Contest
	counts  map[string]int
	total   int
	digests []string
}

// Run tallies the selected contests (all contests when none are
// named). The tally covers every CVR in the workspace, pre-cast cache
// included - that is what makes the demo report interesting after a
// single live cast.
func (op *TallyContestsOperation) Run(ctx context.Context) (string, error) {
	store, err := db.Open(op.WorkspaceDir)
	if err != nil {
		return "", err
	}
	defer store.Close()

	blank, err := loadBlankBallot(ctx, store)
	if err != nil {
		return "", err
	}

	selected, err := selectContests(blank, op.ContestUIDs)
	if err != nil {
		return "", err
	}

	var tallies []contestTally
	for _, contest := range selected {
		tally, err := tallyContest(ctx, store, contest, op.TrackContests)
		if err != nil {
			return "", err
		}
		tallies = append(tallies, tally)
	}

	return op.buildReport(tallies), nil
}

// selectContests resolves the requested contest UIDs against the
// blank ballot, defaulting to every contest.
func selectContests(blank *models.BlankBallot, uids []string) ([]models.Contest, error) {
	if len(uids) == 0 {
		return blank.Contests, nil
	}

	byUID := make(map[string]models.Contest, len(blank.Contests))
	for _, contest := range blank.Contests {
		byUID[contest.UID] = contest
	}

	var selected []models.Contest
	for _, uid := range uids {
		contest, ok := byUID[uid]
		if !ok {
			return nil, fmt.Errorf("no contest %q in this workspace", uid)
		}
		selected = append(selected, contest)
	}
	return selected, nil
}

// tallyContest counts one contest's selections across all CVRs.
func tallyContest(ctx context.Context, store *sql.DB, contest models.Contest, track bool) (contestTally, error) {
	tally := contestTally{contest: contest, counts: make(map[string]int)}

	rows, err := store.QueryContext(ctx, `
		SELECT selection, digest FROM cvr WHERE contest_uid = ? ORDER BY digest
	`, contest.UID)
	if err != nil {
		return tally, fmt.Errorf("failed to read cvrs for %s: %w", contest.UID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rawSelection, digest string
		if err := rows.Scan(&rawSelection, &digest); err != nil {
			return tally, fmt.Errorf("failed to scan cvr: %w", err)
		}

		var selection []string
		if err := json.Unmarshal([]byte(rawSelection), &selection); err != nil {
			return tally, fmt.Errorf("corrupt selection for %s: %w", contest.UID, err)
		}
		for _, name := range selection {
			tally.counts[name]++
		}
		tally.total++

		if track {
			tally.digests = append(tally.digests, digest)
		}
	}
	return tally, rows.Err()
}

// buildReport renders the plurality results for every tallied contest.
func (op *TallyContestsOperation) buildReport(tallies []contestTally) string {
	var sb strings.Builder

	for _, tally := range tallies {
		fmt.Fprintf(&sb, "Contest %s - %s (%s, %d ballots)\n",
			tally.contest.UID, tally.contest.Name, tally.contest.Tally, tally.total)

		names := make([]string, 0, len(tally.counts))
		for name := range tally.counts {
			names = append(names, name)
		}
		// Highest count first, ties alphabetical.
		sort.Slice(names, func(i, j int) bool {
			if tally.counts[names[i]] != tally.counts[names[j]] {
				return tally.counts[names[i]] > tally.counts[names[j]]
			}
			return names[i] < names[j]
		})

		table := tablewriter.NewWriter(&sb)
		if op.Verbosity >= 3 {
			table.SetHeader([]string{"Choice", "Votes", "Share"})
		} else {
			table.SetHeader([]string{"Choice", "Votes"})
		}
		for _, name := range names {
			count := tally.counts[name]
			if op.Verbosity >= 3 {
				share := 0.0
				if tally.total > 0 {
					share = 100 * float64(count) / float64(tally.total)
				}
				table.Append([]string{name, fmt.Sprintf("%d", count), fmt.Sprintf("%.1f%%", share)})
			} else {
				table.Append([]string{name, fmt.Sprintf("%d", count)})
			}
		}
		table.Render()

		if len(names) > 0 {
			fmt.Fprintf(&sb, "Winner: %s\n", names[0])
		}

		if op.TrackContests {
			fmt.Fprintf(&sb, "Tracked %d cast vote records:\n", len(tally.digests))
			for _, digest := range tally.digests {
				fmt.Fprintf(&sb, "  counted %s\n", digest)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
