package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/habithaven/internal/api"
	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/keyring"
	"github.com/julianstephens/habithaven/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	rctx, stop := cli.Interruptible()
	defer stop()

	hasError := false
	apiReachable := false

	// Check 1: API reachable
	if err := checkAPIReachable(rctx, ctx); err != nil {
		fmt.Printf("❌ API reachable (%s): FAIL\n", ctx.Config.APIURL)
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ API reachable (%s): OK\n", ctx.Config.APIURL)
		apiReachable = true
	}

	// Check 2: Keyring available
	keyringOK := keyring.IsAvailable()
	if keyringOK {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("❌ OS keyring: FAIL\n")
		fmt.Printf("   Error: %v\n", keyring.ErrKeyringUnavailable)
		hasError = true
	}

	// Check 3: Session (warning only)
	if apiReachable && keyringOK {
		if err := checkSession(rctx, ctx); err != nil {
			fmt.Printf("⚠ Session: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			u, _ := ctx.Session.User()
			fmt.Printf("✓ Session: OK (logged in as %s)\n", u.DisplayName())
		}
	} else {
		fmt.Printf("⊘ Session: SKIPPED (API or keyring unavailable)\n")
	}

	// Check 4: Config directory writable
	if err := checkConfigDir(ctx.Config.ConfigDir); err != nil {
		fmt.Printf("❌ Config directory: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Config directory (%s): OK\n", ctx.Config.ConfigDir)
	}

	// Check 5: Clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	// Check 6: Timezone
	if day, err := utils.GetTodayInTimezone(ctx.Config.Timezone); err != nil {
		fmt.Printf("❌ Timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Timezone (%s): OK (today is %s)\n", timezoneLabel(ctx.Config.Timezone), day)
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

// checkAPIReachable treats any HTTP response, including 401, as reachable
func checkAPIReachable(rctx context.Context, ctx *cli.Context) error {
	err := ctx.Client.Get(rctx, constants.EndpointListChallenges).Err()
	if err != nil && api.IsNetwork(err) {
		return err
	}
	return nil
}

func checkSession(rctx context.Context, ctx *cli.Context) error {
	if err := ctx.Session.Init(rctx); err != nil {
		return err
	}
	if !ctx.Session.Authenticated() {
		return errors.New("not logged in - run 'habithaven login'")
	}
	return nil
}

func checkConfigDir(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

func timezoneLabel(tz string) string {
	if tz == "" {
		return "Local"
	}
	return tz
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
