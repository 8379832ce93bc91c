package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func when(ts model.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(time.DateTime)
}

func who(ref *model.UserRef, id int64) string {
	if ref != nil && ref.Username != "" {
		return ref.Username
	}
	if id != 0 {
		return fmt.Sprintf("#%d", id)
	}
	return "-"
}

func printItems(w io.Writer, items []model.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tLOCATION\tREPORTER\tIMAGES")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
			it.ID, it.Name, it.Status, it.Location, who(it.Reporter, it.ReporterID), len(it.Images))
	}
	tw.Flush()
}

func printItem(w io.Writer, it model.Item, imageBase string) {
	tw := table(w)
	fmt.Fprintf(tw, "ID:\t%d\n", it.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", it.Name)
	fmt.Fprintf(tw, "Status:\t%s\n", it.Status)
	fmt.Fprintf(tw, "Location:\t%s\n", it.Location)
	if it.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", it.Description)
	}
	fmt.Fprintf(tw, "Reporter:\t%s\n", who(it.Reporter, it.ReporterID))
	fmt.Fprintf(tw, "Reported:\t%s\n", when(it.ReportedAt))
	tw.Flush()

	for _, img := range it.Images {
		u := img.ResolveURL(imageBase)
		if strings.HasPrefix(u, "data:") {
			u = "(inline image)"
		}
		fmt.Fprintf(w, "Image %d: %s\n", img.ID, u)
	}
}

func printComments(w io.Writer, comments []model.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tAUTHOR\tWHEN\tCOMMENT")
	for _, c := range comments {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, who(c.Author, c.UserID), when(c.CreatedAt), c.Content)
	}
	tw.Flush()
}

func printRewards(w io.Writer, rewards []model.Reward) {
	if len(rewards) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tITEM\tAMOUNT\tSTATUS\tOFFERED BY\tRECEIVED BY")
	for _, r := range rewards {
		received := "-"
		if r.ReceivedByID != nil {
			received = fmt.Sprintf("#%d", *r.ReceivedByID)
		}
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%s\t#%d\t%s\n", r.ID, r.ItemID, r.Amount, r.Status, r.OfferedByID, received)
	}
	tw.Flush()
}

func printUser(w io.Writer, u model.User) {
	tw := table(w)
	fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	if u.Email != "" {
		fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	}
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	tw.Flush()
}

func printUsers(w io.Writer, users []model.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role, when(u.CreatedAt))
	}
	tw.Flush()
}

func printClaims(w io.Writer, claims []model.Claim) {
	if len(claims) == 0 {
		fmt.Fprintln(w, "No claims")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tITEM\tCLAIMANT\tSTATUS")
	for _, c := range claims {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", c.ID, c.ItemID, who(c.Claimant, c.ClaimantID), c.Status)
	}
	tw.Flush()
}
