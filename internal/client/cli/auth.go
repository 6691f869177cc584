package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dkaledin/teamtrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account.
//
// On success it prints "Success!" and suggests logging in. Any I/O or
// service error is logged and returned unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Register(ctx, email, string(password)); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success! Now log in with 'login'.")
	return nil
}

// Login prompts for credentials, authenticates and loads the profile.
//
// When the account has no profile yet the session stays in the
// needs-profile state and the user is asked to run 'name'.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	if err := a.session.SignedIn(email); err != nil {
		return err
	}
	log.Printf("Login successful")

	profile, err := a.api.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("Pick a display name with 'name' to continue.")
			return nil
		}
		return err
	}

	if err := a.session.ProfileLoaded(profile.DisplayName, profile.IsAdmin); err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s!\n", profile.DisplayName)
	return nil
}

// ChooseName completes sign-up by creating the profile with the chosen
// display name. The name is permanent, so it asks once and submits.
func (a *App) ChooseName(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Choose your display name (this cannot be changed by members later)", os.Stdout)
	if err != nil {
		return err
	}

	profile, err := a.api.CreateProfile(ctx, name)
	if err != nil {
		log.Printf("Could not create profile: %s", err.Error())
		return err
	}

	if err := a.session.ProfileCreated(profile.DisplayName, profile.IsAdmin); err != nil {
		return err
	}

	if profile.DisplayName != name {
		// Another device won the race; the server kept the first name.
		fmt.Printf("Profile already existed, keeping name %s.\n", profile.DisplayName)
	} else {
		fmt.Printf("Welcome, %s!\n", profile.DisplayName)
	}
	return nil
}

// Logout revokes the refresh token server-side and resets the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		log.Printf("Logout: %s", err.Error())
	}
	return a.session.SignedOut()
}
