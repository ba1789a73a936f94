package cmd

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/mindtrack/mindtrack/models"
	"github.com/mindtrack/mindtrack/normalize"
)

func profileCmd(c *ishell.Context) {
	raw, err := svc.API().CurrentUser(context.Background())
	if err != nil {
		printErr(err)
		return
	}
	var user models.User
	json.Unmarshal(normalize.Normalize(raw, normalize.Single), &user)
	c.Printf("Name:  %s\nEmail: %s\n", user.Name, user.Email)

	c.Print("New name (blank to keep): ")
	name := strings.TrimSpace(c.ReadLine())
	if name == "" {
		return
	}
	raw, err = svc.API().UpdateProfile(context.Background(), map[string]interface{}{"name": name})
	if err != nil {
		printErr(err)
		return
	}
	json.Unmarshal(normalize.Normalize(raw, normalize.Single), &user)
	c.Printf("Profile updated. Hello, %s.\n", user.Name)
}

func passwordCmd(c *ishell.Context) {
	c.Print("Current password: ")
	current := c.ReadPassword()

	var next string
	for {
		c.Print("New password: ")
		next = c.ReadPassword()
		if len(next) >= 8 {
			break
		}
		c.Println("Password must be at least 8 characters.")
	}

	if err := svc.API().ChangePassword(context.Background(), current, next); err != nil {
		printErr(err)
		return
	}
	c.Println("Password changed.")
}
