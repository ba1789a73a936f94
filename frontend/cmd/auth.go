package cmd

import (
	"context"

	"github.com/abiosoft/ishell"

	"github.com/mindtrack/mindtrack/lib/utils"
)

func signInCmd(c *ishell.Context) {
	var email, password string
	for {
		c.Print("Email: ")
		email = c.ReadLine()
		if utils.ValidateEmail(email) {
			break
		}
		c.Println("Email is not valid.")
	}
	for {
		c.Print("Password: ")
		password = c.ReadPassword()
		if len(password) > 0 {
			break
		}
		c.Println("Password cannot be empty.")
	}

	result, err := svc.API().Login(context.Background(), email, password)
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("Welcome back, %s.\n", result.User.Name)
	enterUserMode()
}

func signUpCmd(c *ishell.Context) {
	var name, email, password string
	for {
		c.Print("Name: ")
		name = c.ReadLine()
		if len(name) > 1 {
			break
		}
		c.Println("Name must be longer than 1 character.")
	}
	for {
		c.Print("Email: ")
		email = c.ReadLine()
		if utils.ValidateEmail(email) {
			break
		}
		c.Println("Email is not valid.")
	}
	for {
		c.Print("Password: ")
		password = c.ReadPassword()
		if !utils.ValidatePassword(password) {
			c.Println("Password must be at least 8 characters and contain both letters and numbers.")
			continue
		}
		c.Print("Confirm Password: ")
		if c.ReadPassword() == password {
			break
		}
		c.Println("Passwords do not match.")
	}

	result, err := svc.API().Register(context.Background(), name, email, password)
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("Welcome, %s. Your account is ready.\n", result.User.Name)
	enterUserMode()
}

func signOutCmd(c *ishell.Context) {
	if err := svc.SignOut(); err != nil {
		printErr(err)
		return
	}
	c.Println("You are signed out.")
	enterGuestMode()
}
