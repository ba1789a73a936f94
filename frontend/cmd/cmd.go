// Package cmd defines the interactive shell: the command sets available to
// guests and signed-in users, and the views that render from the data
// service.
package cmd

import (
	"github.com/abiosoft/ishell"
	"github.com/common-nighthawk/go-figure"

	"github.com/mindtrack/mindtrack/data"
	"github.com/mindtrack/mindtrack/lib/utils"
)

// svc is the data service every view reads through.
var svc *data.Service

// shell is the interactive shell instance users type commands into.
var shell *ishell.Shell

// loggedIn indicates whether a user is currently signed in.
var loggedIn bool

// guestCommands are available before signing in.
var guestCommands []Command

// userCommands are available only to signed-in users.
var userCommands []Command

// Command is one shell command: a name, a short description and the function
// executed when it is invoked.
type Command struct {
	Name string
	Desc string
	Func func(c *ishell.Context)
}

// Init builds the shell and its command sets over a data service. It must be
// called before Execute.
func Init(service *data.Service) {
	svc = service
	shell = ishell.New()

	guestCommands = []Command{
		{Name: "signin", Desc: "Sign in to your account", Func: signInCmd},
		{Name: "signup", Desc: "Sign up for a new account", Func: signUpCmd},
	}

	userCommands = []Command{
		{Name: "dashboard", Desc: "Today's habits, mood and goal summary", Func: dashboardCmd},
		{Name: "habits", Desc: "List your habits", Func: habitsCmd},
		{Name: "addhabit", Desc: "Create a new habit", Func: addHabitCmd},
		{Name: "complete", Desc: "Mark a habit completed for today", Func: completeHabitCmd},
		{Name: "uncomplete", Desc: "Remove today's completion from a habit", Func: uncompleteHabitCmd},
		{Name: "mood", Desc: "Record how you are feeling today", Func: moodCmd},
		{Name: "moods", Desc: "Show your recent mood entries", Func: moodsCmd},
		{Name: "goals", Desc: "List your goals", Func: goalsCmd},
		{Name: "addgoal", Desc: "Create a new goal", Func: addGoalCmd},
		{Name: "progress", Desc: "Record progress on a goal", Func: goalProgressCmd},
		{Name: "analytics", Desc: "Show your dashboard analytics", Func: analyticsCmd},
		{Name: "social", Desc: "Leaderboard and your social stats", Func: socialCmd},
		{Name: "profile", Desc: "View or update your profile", Func: profileCmd},
		{Name: "password", Desc: "Change your password", Func: passwordCmd},
		{Name: "signout", Desc: "Sign out of your account", Func: signOutCmd},
	}

	// Resume an existing session if a valid token is stored.
	if ok, err := svc.API().IsAuthenticated(); err == nil && ok {
		loggedIn = true
	}
}

// addCommands registers a command set on the shell.
func addCommands(sh *ishell.Shell, commands []Command) {
	for _, command := range commands {
		command := command
		sh.AddCmd(&ishell.Cmd{
			Name: command.Name,
			Help: command.Desc,
			Func: command.Func,
		})
	}
}

// enterUserMode swaps the guest command set out for the user one.
func enterUserMode() {
	loggedIn = true
	for _, command := range guestCommands {
		shell.DeleteCmd(command.Name)
	}
	addCommands(shell, userCommands)
}

// enterGuestMode swaps the user command set out for the guest one.
func enterGuestMode() {
	loggedIn = false
	for _, command := range userCommands {
		shell.DeleteCmd(command.Name)
	}
	addCommands(shell, guestCommands)
}

// Execute prints the banner and runs the shell until exit.
func Execute() {
	banner := figure.NewFigure("MindTrack", "", true)
	banner.Print()
	shell.Println("Welcome to MindTrack. Type 'help' to see available commands.")

	if loggedIn {
		addCommands(shell, userCommands)
	} else {
		addCommands(shell, guestCommands)
	}
	shell.Run()
}

// printErr renders an error in the shell's banner style.
func printErr(err error) {
	utils.PrintError(err.Error())
}
