package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/guard"
	"github.com/erazemk/najdeno/internal/imaging"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/state"
)

type command struct {
	usage   string
	minArgs int
	// skipRestore is set for commands that replace the session anyway.
	skipRestore bool
	// route maps the arguments to the view the command stands for. Nil
	// means the command is not guarded.
	route func(args []string) string
	run   func(ctx context.Context, a *app, args []string) error
}

type usageError string

func (e usageError) Error() string { return string(e) }

func fixed(path string) func([]string) string {
	return func([]string) string { return path }
}

func itemRoute(args []string) string { return "/items/" + args[0] }

var commands = map[string]command{
	"login":          {usage: "login <username> <password>", minArgs: 2, skipRestore: true, run: cmdLogin},
	"register":       {usage: "register [-email e] [-role r] <username> <password>", skipRestore: true, run: cmdRegister},
	"logout":         {usage: "logout", skipRestore: true, run: cmdLogout},
	"whoami":         {usage: "whoami", run: cmdWhoami},
	"items":          {usage: "items [-status s] [-location l]", route: fixed("/items"), run: cmdItems},
	"item":           {usage: "item <id>", minArgs: 1, route: itemRoute, run: cmdItem},
	"report":         {usage: "report -name n -location l [-description d] [-status s]", route: fixed("/report-item"), run: cmdReport},
	"update-item":    {usage: "update-item <id> [-name n] [-location l] [-description d] [-status s]", minArgs: 1, route: itemRoute, run: cmdUpdateItem},
	"delete-item":    {usage: "delete-item <id>", minArgs: 1, route: itemRoute, run: cmdDeleteItem},
	"claim":          {usage: "claim <item-id>", minArgs: 1, route: itemRoute, run: cmdClaim},
	"upload-image":   {usage: "upload-image <item-id> <url-or-file>", minArgs: 2, route: itemRoute, run: cmdUploadImage},
	"comments":       {usage: "comments <item-id>", minArgs: 1, route: itemRoute, run: cmdComments},
	"comment":        {usage: "comment <item-id> <text>", minArgs: 2, route: itemRoute, run: cmdComment},
	"offer-reward":   {usage: "offer-reward <item-id> <amount>", minArgs: 2, route: func(args []string) string { return "/offer-reward/" + args[0] }, run: cmdOfferReward},
	"pay-reward":     {usage: "pay-reward <reward-id>", minArgs: 1, route: fixed("/reward-history"), run: cmdPayReward},
	"rewards":        {usage: "rewards", route: fixed("/reward-history"), run: cmdRewards},
	"profile":        {usage: "profile", route: fixed("/profile"), run: cmdProfile},
	"update-profile": {usage: "update-profile [-username u] [-email e] [-password p]", route: fixed("/profile"), run: cmdUpdateProfile},
	"users":          {usage: "users", route: fixed("/admin/users"), run: cmdUsers},
	"delete-user":    {usage: "delete-user <id>", minArgs: 1, route: fixed("/admin/users"), run: cmdDeleteUser},
	"claims":         {usage: "claims", route: fixed("/admin/claims"), run: cmdClaims},
	"approve-claim":  {usage: "approve-claim <id>", minArgs: 1, route: fixed("/admin/claims"), run: cmdApproveClaim},
	"reject-claim":   {usage: "reject-claim <id>", minArgs: 1, route: fixed("/admin/claims"), run: cmdRejectClaim},
	"all-rewards":    {usage: "all-rewards", route: fixed("/admin/rewards"), run: cmdAllRewards},
	"route":          {usage: "route <path>", minArgs: 1, run: cmdRoute},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError(fmt.Sprintf("invalid id %q", s))
	}
	return id, nil
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseSub(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}
	return nil
}

func parseStatus(s string) (model.ItemStatus, error) {
	switch st := model.ItemStatus(s); st {
	case model.ItemStatusLost, model.ItemStatusFound, model.ItemStatusClaimed, model.ItemStatusReturned:
		return st, nil
	}
	return "", usageError(fmt.Sprintf("invalid status %q", s))
}

// Auth.

func cmdLogin(ctx context.Context, a *app, args []string) error {
	session, err := a.store.Auth.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Logged in as %s (%s)\n", session.User.Username, session.Role())
	fmt.Fprintf(a.stdout, "Home: %s\n", guard.Home(session))
	return nil
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	email := fs.String("email", "", "")
	role := fs.String("role", "", "")
	if err := parseSub(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usageError("username and password are required")
	}

	reg := api.Registration{Username: fs.Arg(0), Password: fs.Arg(1), Email: *email}
	if *role != "" {
		r, err := model.ParseRole(*role)
		if err != nil {
			return usageError(err.Error())
		}
		reg.Role = r
	}

	resp, err := a.store.Auth.Register(ctx, reg)
	if err != nil {
		return err
	}
	if resp.Message != "" {
		fmt.Fprintln(a.stdout, resp.Message)
	}
	if session := a.store.Auth.Session(); session.IsAuthenticated {
		fmt.Fprintf(a.stdout, "Logged in as %s (%s)\n", session.User.Username, session.Role())
	} else {
		fmt.Fprintln(a.stdout, "Registered; log in to continue")
	}
	return nil
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.store.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Logged out")
	return nil
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	session := a.store.Auth.Session()
	if !session.IsAuthenticated {
		fmt.Fprintln(a.stdout, "Not logged in")
		return nil
	}
	printUser(a.stdout, *session.User)
	return nil
}

// Items.

func cmdItems(ctx context.Context, a *app, args []string) error {
	fs := newFlags("items")
	status := fs.String("status", "", "")
	location := fs.String("location", "", "")
	if err := parseSub(fs, args); err != nil {
		return err
	}

	filter := model.ItemFilter{Location: *location}
	if *status != "" {
		st, err := parseStatus(*status)
		if err != nil {
			return err
		}
		filter.Status = st
	}

	if _, err := a.store.Items.FetchItems(ctx, filter); err != nil {
		return err
	}
	printItems(a.stdout, a.store.Items.State().Items)
	return nil
}

func cmdItem(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := a.store.Items.FetchItem(ctx, id); err != nil {
		return err
	}
	item := a.store.Items.State().SelectedItem
	if item == nil {
		fmt.Fprintln(a.stdout, "Item not found")
		return nil
	}
	printItem(a.stdout, *item, a.imageBase)

	// Comments are optional on the details view.
	if _, err := a.store.Comments.FetchComments(ctx); err != nil {
		a.log.Info("comments unavailable", zap.Error(err))
		return nil
	}
	printComments(a.stdout, state.ForItem(a.store.Comments.State().Comments, id))
	return nil
}

func itemFlags(name string) (*flag.FlagSet, *string, *string, *string, *string) {
	fs := newFlags(name)
	return fs, fs.String("name", "", ""), fs.String("location", "", ""), fs.String("description", "", ""), fs.String("status", "", "")
}

func cmdReport(ctx context.Context, a *app, args []string) error {
	fs, name, location, description, status := itemFlags("report")
	if err := parseSub(fs, args); err != nil {
		return err
	}
	if *name == "" || *location == "" {
		return usageError("name and location are required")
	}

	item := model.NewItem{Name: *name, Location: *location, Description: *description, Status: model.ItemStatusLost}
	if *status != "" {
		st, err := parseStatus(*status)
		if err != nil {
			return err
		}
		item.Status = st
	}

	created, err := a.store.Items.ReportItem(ctx, item)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Reported item %d\n", created.ID)
	return nil
}

func cmdUpdateItem(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	fs, name, location, description, status := itemFlags("update-item")
	if err := parseSub(fs, args[1:]); err != nil {
		return err
	}

	var update model.ItemUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			update.Name = name
		case "location":
			update.Location = location
		case "description":
			update.Description = description
		}
	})
	if *status != "" {
		st, err := parseStatus(*status)
		if err != nil {
			return err
		}
		update.Status = &st
	}

	updated, err := a.store.Items.UpdateItem(ctx, id, update)
	if err != nil {
		return err
	}
	printItem(a.stdout, *updated, a.imageBase)
	return nil
}

func cmdDeleteItem(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.store.Items.DeleteItem(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted item %d\n", id)
	return nil
}

func cmdClaim(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	claim, err := a.store.Items.ClaimItem(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Claim %d on item %d is %s\n", claim.ID, claim.ItemID, claim.Status)
	return nil
}

func cmdUploadImage(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ref, err := imaging.Reference(args[1])
	if err != nil {
		return err
	}
	img, err := a.store.Items.UploadImage(ctx, id, ref)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Attached image %d to item %d\n", img.ID, id)
	return nil
}

// Comments.

func cmdComments(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := a.store.Comments.FetchComments(ctx); err != nil {
		return err
	}
	printComments(a.stdout, state.ForItem(a.store.Comments.State().Comments, id))
	return nil
}

func cmdComment(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	content := strings.TrimSpace(strings.Join(args[1:], " "))
	if content == "" {
		return usageError("comment text is required")
	}
	c, err := a.store.Comments.CreateComment(ctx, model.NewComment{ItemID: id, Content: content})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added comment %d\n", c.ID)
	return nil
}

// Rewards.

func cmdOfferReward(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil || amount <= 0 {
		return usageError(fmt.Sprintf("invalid amount %q", args[1]))
	}
	r, err := a.store.Rewards.OfferReward(ctx, model.NewReward{ItemID: id, Amount: amount})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Offered reward %d of %.2f on item %d\n", r.ID, r.Amount, r.ItemID)
	return nil
}

func cmdPayReward(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	r, err := a.store.Rewards.PayReward(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Reward %d is %s\n", r.ID, r.Status)
	return nil
}

func cmdRewards(ctx context.Context, a *app, _ []string) error {
	if _, err := a.store.Rewards.FetchHistory(ctx); err != nil {
		return err
	}
	st := a.store.Rewards.State()
	fmt.Fprintln(a.stdout, "Offered:")
	printRewards(a.stdout, st.Offered)
	fmt.Fprintln(a.stdout, "Received:")
	printRewards(a.stdout, st.Received)
	return nil
}

// Profile.

func cmdProfile(ctx context.Context, a *app, _ []string) error {
	user, err := a.store.User.FetchProfile(ctx)
	if err != nil {
		return err
	}
	printUser(a.stdout, *user)
	return nil
}

func cmdUpdateProfile(ctx context.Context, a *app, args []string) error {
	fs := newFlags("update-profile")
	username := fs.String("username", "", "")
	email := fs.String("email", "", "")
	password := fs.String("password", "", "")
	if err := parseSub(fs, args); err != nil {
		return err
	}

	var update api.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "username":
			update.Username = username
		case "email":
			update.Email = email
		case "password":
			update.Password = password
		}
	})
	if update == (api.ProfileUpdate{}) {
		return usageError("nothing to update")
	}

	user, err := a.store.User.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	printUser(a.stdout, *user)
	return nil
}

// Admin.

func cmdUsers(ctx context.Context, a *app, _ []string) error {
	if _, err := a.store.Admin.FetchUsers(ctx); err != nil {
		return err
	}
	printUsers(a.stdout, a.store.Admin.State().Users)
	return nil
}

func cmdDeleteUser(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.store.Admin.DeleteUser(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted user %d\n", id)
	return nil
}

func cmdClaims(ctx context.Context, a *app, _ []string) error {
	if _, err := a.store.Admin.FetchClaims(ctx); err != nil {
		return err
	}
	printClaims(a.stdout, a.store.Admin.State().Claims)
	return nil
}

func cmdApproveClaim(ctx context.Context, a *app, args []string) error {
	return moderate(ctx, a, args, a.store.Admin.ApproveClaim)
}

func cmdRejectClaim(ctx context.Context, a *app, args []string) error {
	return moderate(ctx, a, args, a.store.Admin.RejectClaim)
}

func moderate(ctx context.Context, a *app, args []string, op func(context.Context, int64) (*model.Claim, error)) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	claim, err := op(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Claim %d is %s\n", claim.ID, claim.Status)
	return nil
}

func cmdAllRewards(ctx context.Context, a *app, _ []string) error {
	rewards, err := a.store.Admin.FetchAllRewards(ctx)
	if err != nil {
		return err
	}
	printRewards(a.stdout, rewards)
	return nil
}

// Routing.

func cmdRoute(_ context.Context, a *app, args []string) error {
	st := a.store.Auth.State()
	d := a.router.Resolve(args[0], st.Session, st.Restoring)

	fmt.Fprintf(a.stdout, "outcome: %s\n", d.Outcome)
	if d.Location != "" {
		fmt.Fprintf(a.stdout, "location: %s\n", d.Location)
	}
	if d.Route.Name != "" {
		fmt.Fprintf(a.stdout, "route: %s\n", d.Route.Name)
	}
	for k, v := range d.Params {
		fmt.Fprintf(a.stdout, "param %s: %s\n", k, v)
	}
	return nil
}
