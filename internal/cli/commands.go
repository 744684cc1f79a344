package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"
	"time"

	"github.com/typewell/typewell/shared/api"
	"github.com/typewell/typewell/shared/domain"
)

var errUsage = errors.New("usage")

var commands = map[string]command{
	"register":       {"register -username <name> -email <email> -password <pw>", runRegister},
	"login":          {"login -email <email> -password <pw>", runLogin},
	"confirm":        {"confirm -email <email> -password <pw>", runConfirm},
	"logout":         {"logout", runLogout},
	"me":             {"me", runMe},
	"user":           {"user <id>", runUser},
	"search":         {"search <query>", runSearch},
	"stats":          {"stats -wpm <n> -cpm <n> -accuracy <pct> [-timestamp <unix ms>] [-missed a,b] [-combinations ab,cd]", runStats},
	"reset-stats":    {"reset-stats", runResetStats},
	"delete-account": {"delete-account", runDeleteAccount},
	"picture":        {"picture <value>", runPicture},
	"reset-picture":  {"reset-picture", runResetPicture},
	"badges":         {"badges [a,b,c]", runBadges},
	"settings":       {"settings key=value...", runSettings},
	"edit-username":  {"edit-username <name>", runEditUsername},
	"edit-email":     {"edit-email <email>", runEditEmail},
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// oneArg returns the single positional argument of a command.
func oneArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", errUsage
	}
	return args[0], nil
}

func noArgs(args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return nil
}

// splitList turns "a,b,c" into its items; an empty string is an empty list.
func splitList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func credentials(name string, args []string) (email, password string, err error) {
	fs := newFlagSet(name)
	fs.StringVar(&email, "email", "", "account email")
	fs.StringVar(&password, "password", "", "account password")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return "", "", errUsage
	}
	return email, password, nil
}

func runRegister(e *env, args []string) (responder, error) {
	var req api.RegisterRequest
	fs := newFlagSet("register")
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return nil, errUsage
	}
	return e.client.Register(e.ctx, req)
}

func runLogin(e *env, args []string) (responder, error) {
	email, password, err := credentials("login", args)
	if err != nil {
		return nil, err
	}
	return e.client.Login(e.ctx, api.LoginRequest{Email: email, Password: password})
}

func runConfirm(e *env, args []string) (responder, error) {
	email, password, err := credentials("confirm", args)
	if err != nil {
		return nil, err
	}
	return e.client.ConfirmPassword(e.ctx, api.ConfirmPasswordRequest{Email: email, Password: password})
}

func runLogout(e *env, args []string) (responder, error) {
	if err := noArgs(args); err != nil {
		return nil, err
	}
	return e.client.Logout(e.ctx)
}

func runMe(e *env, args []string) (responder, error) {
	if err := noArgs(args); err != nil {
		return nil, err
	}
	return e.client.GetCurrentUser(e.ctx)
}

func runUser(e *env, args []string) (responder, error) {
	id, err := oneArg(args)
	if err != nil {
		return nil, err
	}
	return e.client.GetUserByID(e.ctx, id)
}

func runSearch(e *env, args []string) (responder, error) {
	q, err := oneArg(args)
	if err != nil {
		return nil, err
	}
	return e.client.SearchUsers(e.ctx, q)
}

func runStats(e *env, args []string) (responder, error) {
	var r domain.SessionResult
	var missed, combinations string
	fs := newFlagSet("stats")
	fs.Float64Var(&r.Wpm, "wpm", 0, "words per minute")
	fs.Float64Var(&r.Cpm, "cpm", 0, "characters per minute")
	fs.Float64Var(&r.Accuracy, "accuracy", 0, "accuracy in percent")
	fs.Int64Var(&r.Timestamp, "timestamp", time.Now().UnixMilli(), "finish time, unix milliseconds")
	fs.StringVar(&missed, "missed", "", "comma separated missed keys")
	fs.StringVar(&combinations, "combinations", "", "comma separated missed key combinations")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return nil, errUsage
	}
	r.Missed = splitList(missed)
	r.Combinations = splitList(combinations)
	return e.client.UpdateStats(e.ctx, r)
}

func runResetStats(e *env, args []string) (responder, error) {
	if err := noArgs(args); err != nil {
		return nil, err
	}
	return e.client.ResetStats(e.ctx)
}

func runDeleteAccount(e *env, args []string) (responder, error) {
	if err := noArgs(args); err != nil {
		return nil, err
	}
	return e.client.DeleteAccount(e.ctx)
}

func runPicture(e *env, args []string) (responder, error) {
	if len(args) > 1 {
		return nil, errUsage
	}
	var picture string
	if len(args) == 1 {
		picture = args[0]
	}
	return e.client.UpdateProfilePicture(e.ctx, picture)
}

func runResetPicture(e *env, args []string) (responder, error) {
	if err := noArgs(args); err != nil {
		return nil, err
	}
	return e.client.ResetProfilePicture(e.ctx)
}

// runBadges without an argument sends nothing; "" clears the list.
func runBadges(e *env, args []string) (responder, error) {
	if len(args) > 1 {
		return nil, errUsage
	}
	var badges domain.Badges
	if len(args) == 1 {
		badges = splitList(args[0])
	}
	return e.client.UpdateBadges(e.ctx, badges)
}

// runSettings takes key=value pairs. Values that parse as JSON keep their
// type (true, 12, "x", [..]); anything else is sent as a string.
func runSettings(e *env, args []string) (responder, error) {
	if len(args) == 0 {
		return e.client.UpdateSettings(e.ctx, nil)
	}
	patch := api.SettingsPatch{}
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errUsage
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		patch[key] = v
	}
	return e.client.UpdateSettings(e.ctx, patch)
}

func runEditUsername(e *env, args []string) (responder, error) {
	name, err := oneArg(args)
	if err != nil {
		return nil, err
	}
	return e.client.EditUsername(e.ctx, name)
}

func runEditEmail(e *env, args []string) (responder, error) {
	email, err := oneArg(args)
	if err != nil {
		return nil, err
	}
	return e.client.EditEmail(e.ctx, email)
}
