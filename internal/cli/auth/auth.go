package auth

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/services"
	"github.com/julianstephens/habithaven/internal/validation"
)

type LoginCmd struct {
	Email    string `short:"e" help:"Account email. Prompted for when omitted."`
	Password string `short:"p" help:"Account password. Prompted for when omitted." env:"HABITHAVEN_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if err := prompt(
		field{"Email", &c.Email, false},
		field{"Password", &c.Password, true},
	); err != nil {
		return err
	}
	if err := validation.Struct(validation.Credentials{Email: c.Email, Password: c.Password}); err != nil {
		return err
	}

	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.Session.Init(rctx); err != nil {
		return err
	}
	if u, ok := ctx.Session.User(); ok {
		return fmt.Errorf("already logged in as %s. Run 'habithaven logout' first", u.DisplayName())
	}

	if err := ctx.Session.Login(rctx, strings.TrimSpace(c.Email), c.Password); err != nil {
		return err
	}
	u, _ := ctx.Session.User()
	fmt.Printf("✓ Logged in as %s\n", u.DisplayName())
	return nil
}

type RegisterCmd struct {
	FullName string `name:"full-name" short:"n" help:"Full name. Prompted for when omitted."`
	Username string `short:"u" help:"Username. Prompted for when omitted."`
	Email    string `short:"e" help:"Email. Prompted for when omitted."`
	Password string `short:"p" help:"Password (at least 6 characters). Prompted for when omitted." env:"HABITHAVEN_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	if err := prompt(
		field{"Full name", &c.FullName, false},
		field{"Username", &c.Username, false},
		field{"Email", &c.Email, false},
		field{"Password", &c.Password, true},
	); err != nil {
		return err
	}
	in := services.RegisterInput{
		FullName: strings.TrimSpace(c.FullName),
		Username: strings.TrimSpace(c.Username),
		Email:    strings.TrimSpace(c.Email),
		Password: c.Password,
	}
	if err := validation.Struct(in); err != nil {
		return err
	}

	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.Session.Init(rctx); err != nil {
		return err
	}
	if ctx.Session.Authenticated() {
		return fmt.Errorf("already logged in. Run 'habithaven logout' first")
	}

	res, err := ctx.Session.Register(rctx, in)
	if err != nil {
		return err
	}
	if !res.AutoLoggedIn {
		fmt.Println("✓ Account created")
		fmt.Println("  Run 'habithaven login' to sign in")
		return nil
	}
	fmt.Printf("✓ Account created. Logged in as %s\n", res.User.DisplayName())
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.Session.Init(rctx); err != nil {
		return err
	}
	if !ctx.Session.Authenticated() {
		fmt.Println("ℹ Not logged in")
		return nil
	}
	if err := ctx.Session.Logout(rctx); err != nil {
		return err
	}
	fmt.Println("✓ Logged out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	u, _ := ctx.Session.User()

	fmt.Printf("%s (@%s)\n", u.DisplayName(), u.Username)
	fmt.Printf("  Email:       %s\n", u.Email)
	fmt.Printf("  Level:       %d\n", u.Level)
	fmt.Printf("  XP:          %d\n", u.XP)
	fmt.Printf("  Streak:      %d days\n", u.StreakCount)
	fmt.Printf("  Daily score: %d\n", u.DailyScore)
	if len(u.Badges) > 0 {
		fmt.Printf("  Badges:      %s\n", strings.Join(u.Badges, ", "))
	}
	return nil
}

type AccountUpdateCmd struct {
	FullName string `name:"full-name" short:"n" help:"New full name."`
	Username string `short:"u" help:"New username."`
	Email    string `short:"e" help:"New email."`
}

func (c *AccountUpdateCmd) input() services.AccountInput {
	return services.AccountInput{
		FullName: strings.TrimSpace(c.FullName),
		Username: strings.TrimSpace(c.Username),
		Email:    strings.TrimSpace(c.Email),
	}
}

func (c *AccountUpdateCmd) Validate() error {
	return validation.Struct(c.input())
}

func (c *AccountUpdateCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	if err := ctx.Session.UpdateAccount(rctx, c.input()); err != nil {
		return err
	}
	u, _ := ctx.Session.User()
	fmt.Printf("✓ Account updated: %s (@%s, %s)\n", u.DisplayName(), u.Username, u.Email)
	return nil
}

type AccountPasswordCmd struct {
	Old string `help:"Current password. Prompted for when omitted."`
	New string `help:"New password. Prompted for when omitted."`
}

func (c *AccountPasswordCmd) Run(ctx *cli.Context) error {
	if err := prompt(
		field{"Current password", &c.Old, true},
		field{"New password", &c.New, true},
	); err != nil {
		return err
	}
	if err := validation.Struct(validation.PasswordChange{OldPassword: c.Old, NewPassword: c.New}); err != nil {
		return err
	}

	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	if err := ctx.Session.ChangePassword(rctx, c.Old, c.New); err != nil {
		return err
	}
	fmt.Println("✓ Password changed")
	return nil
}

type field struct {
	title  string
	value  *string
	secret bool
}

// prompt asks for every field that was not given on the command line
func prompt(fields ...field) error {
	var inputs []huh.Field
	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		in := huh.NewInput().Title(f.title).Value(f.value)
		if f.secret {
			in = in.EchoMode(huh.EchoModePassword)
		}
		inputs = append(inputs, in)
	}
	if len(inputs) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(inputs...)).Run()
}
