package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/mindtrack/mindtrack/models"
)

// Stat summary lines live here rather than inline in the commands: the stat
// fields mix ints and floats, and vet cannot check verbs passed through
// ishell's Printf.

func habitSummaryLine(s models.HabitStats) string {
	return fmt.Sprintf("Today's Habits (%d/%d done, %d%%)", s.CompletedToday, s.TotalHabits, s.CompletionRate)
}

func moodSummaryLine(s models.MoodStats) string {
	return fmt.Sprintf("Recent Mood: %.1f/5 over %d entries (energy %.1f, stress %.1f)",
		s.AverageMood, s.TotalEntries, s.AverageEnergy, s.AverageStress)
}

func goalSummaryLine(s models.GoalStats) string {
	return fmt.Sprintf("Active Goals (%d, avg progress %d%%)", s.ActiveGoals, s.AverageProgress)
}

func analyticsLines(a models.DashboardAnalytics) []string {
	return []string{
		fmt.Sprintf("Habits: %d total, %d done today, %d%% completion, avg streak %d",
			a.Habits.TotalHabits, a.Habits.CompletedToday, a.Habits.CompletionRate, a.Habits.AverageStreak),
		fmt.Sprintf("Moods:  %d entries, avg mood %.1f, energy %.1f, stress %.1f",
			a.Moods.TotalEntries, a.Moods.AverageMood, a.Moods.AverageEnergy, a.Moods.AverageStress),
		fmt.Sprintf("Goals:  %d total, %d active, %d completed, avg progress %d%%",
			a.Goals.TotalGoals, a.Goals.ActiveGoals, a.Goals.CompletedGoals, a.Goals.AverageProgress),
	}
}

func checkMark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// readFloat prompts until the user types a valid number.
func readFloat(c *ishell.Context, prompt string) float64 {
	for {
		c.Print(prompt)
		v, err := strconv.ParseFloat(strings.TrimSpace(c.ReadLine()), 64)
		if err == nil {
			return v
		}
		c.Println("Please enter a number.")
	}
}

// validScale reports whether a value sits on the 1 to 10 rating scale used
// for energy and stress.
func validScale(v float64) bool {
	return v >= 1 && v <= 10
}

// readScale prompts until the user enters a number from 1 to 10.
func readScale(c *ishell.Context, prompt string) float64 {
	for {
		v := readFloat(c, prompt)
		if validScale(v) {
			return v
		}
		c.Println("Please enter a number from 1 to 10.")
	}
}

// readChoice prompts until the user picks one of the allowed values, with the
// first value as the default on empty input.
func readChoice(c *ishell.Context, prompt string, allowed []string) string {
	for {
		c.Printf("%s (%s): ", prompt, strings.Join(allowed, "/"))
		v := strings.TrimSpace(strings.ToLower(c.ReadLine()))
		if v == "" {
			return allowed[0]
		}
		for _, a := range allowed {
			if v == a {
				return v
			}
		}
		c.Println("Not one of the choices.")
	}
}

func dashboardCmd(c *ishell.Context) {
	ctx := context.Background()

	motivation, err := svc.Motivation(ctx)
	if err == nil && motivation.Message != "" {
		c.Printf("\n  \"%s\"\n", motivation.Message)
	}

	today, err := svc.TodayHabits(ctx)
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("\n%s\n", habitSummaryLine(svc.HabitStats(today)))
	for _, h := range today {
		c.Printf("  %s %s (streak %d)\n", checkMark(h.IsCompletedToday), h.Name, h.CurrentStreak)
	}

	moods, err := svc.RecentMoods(ctx)
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("\n%s\n", moodSummaryLine(svc.MoodStats(moods)))

	goals, err := svc.ActiveGoals(ctx)
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("\n%s\n", goalSummaryLine(svc.GoalStats(goals)))
	for _, g := range goals {
		c.Printf("  %s: %.0f%%\n", g.Title, g.Percent())
	}
	c.Println()
}

func habitsCmd(c *ishell.Context) {
	habits, err := svc.Habits(context.Background(), nil)
	if err != nil {
		printErr(err)
		return
	}
	if len(habits) == 0 {
		c.Println("No habits yet. Try 'addhabit'.")
		return
	}
	for i, h := range habits {
		c.Printf("%d. %s %s [%s, %s] streak %d (best %d)\n",
			i+1, checkMark(h.IsCompletedToday), h.Name, h.Category, h.Frequency, h.CurrentStreak, h.LongestStreak)
	}
}

func addHabitCmd(c *ishell.Context) {
	var input models.HabitInput
	for {
		c.Print("Name: ")
		input.Name = strings.TrimSpace(c.ReadLine())
		if input.Name != "" {
			break
		}
		c.Println("Name cannot be empty.")
	}
	c.Print("Category: ")
	input.Category = strings.TrimSpace(c.ReadLine())
	input.Frequency = readChoice(c, "Frequency", []string{"daily", "weekly"})
	input.TargetValue = readFloat(c, "Target value: ")
	c.Print("Unit (optional): ")
	input.Unit = strings.TrimSpace(c.ReadLine())

	habit, err := svc.CreateHabit(context.Background(), input)
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("Created habit %q.\n", habit.Name)
}

// pickHabit lists habits and reads a 1-based selection.
func pickHabit(c *ishell.Context) (models.Habit, bool) {
	habits, err := svc.Habits(context.Background(), nil)
	if err != nil {
		printErr(err)
		return models.Habit{}, false
	}
	if len(habits) == 0 {
		c.Println("No habits yet.")
		return models.Habit{}, false
	}
	for i, h := range habits {
		c.Printf("%d. %s %s\n", i+1, checkMark(h.IsCompletedToday), h.Name)
	}
	c.Print("Which habit? ")
	n, err := strconv.Atoi(strings.TrimSpace(c.ReadLine()))
	if err != nil || n < 1 || n > len(habits) {
		c.Println("No such habit.")
		return models.Habit{}, false
	}
	return habits[n-1], true
}

func completeHabitCmd(c *ishell.Context) {
	habit, ok := pickHabit(c)
	if !ok {
		return
	}
	updated, err := svc.CompleteHabit(context.Background(), habit.ID, models.CompletionInput{})
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("Done. %q streak is now %d.\n", updated.Name, updated.CurrentStreak)
}

func uncompleteHabitCmd(c *ishell.Context) {
	habit, ok := pickHabit(c)
	if !ok {
		return
	}
	if err := svc.UncompleteHabit(context.Background(), habit.ID); err != nil {
		printErr(err)
		return
	}
	c.Printf("Removed today's completion for %q.\n", habit.Name)
}

func moodCmd(c *ishell.Context) {
	var input models.MoodInput
	input.Mood = readChoice(c, "Mood", []string{"neutral", "very-happy", "happy", "sad", "very-sad"})
	input.Energy = readScale(c, "Energy (1-10): ")
	input.Stress = readScale(c, "Stress (1-10): ")
	c.Print("Notes (optional): ")
	input.Notes = strings.TrimSpace(c.ReadLine())

	mood, err := svc.CreateMood(context.Background(), input)
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("Logged mood %q (score %.0f).\n", mood.Mood, mood.MoodScore)
}

func moodsCmd(c *ishell.Context) {
	moods, err := svc.RecentMoods(context.Background())
	if err != nil {
		printErr(err)
		return
	}
	if len(moods) == 0 {
		c.Println("No mood entries yet. Try 'mood'.")
		return
	}
	for _, m := range moods {
		date := m.Date
		if len(date) >= 10 {
			date = date[:10]
		}
		c.Printf("%s  %-10s score %.0f  energy %.0f  stress %.0f\n", date, m.Mood, m.MoodScore, m.Energy, m.Stress)
	}
	stats := svc.MoodStats(moods)
	c.Printf("Average mood %.1f over %d entries.\n", stats.AverageMood, stats.TotalEntries)
}

func goalsCmd(c *ishell.Context) {
	goals, err := svc.Goals(context.Background(), nil)
	if err != nil {
		printErr(err)
		return
	}
	if len(goals) == 0 {
		c.Println("No goals yet. Try 'addgoal'.")
		return
	}
	for i, g := range goals {
		line := ""
		if g.DaysRemaining != nil {
			line = " (" + strconv.Itoa(*g.DaysRemaining) + " days left)"
		}
		c.Printf("%d. %s [%s] %.1f/%.1f %s: %.0f%%%s\n",
			i+1, g.Title, g.Status, g.Current(), g.TargetValue, g.Unit, g.Percent(), line)
	}
}

func addGoalCmd(c *ishell.Context) {
	var input models.GoalInput
	for {
		c.Print("Title: ")
		input.Title = strings.TrimSpace(c.ReadLine())
		if input.Title != "" {
			break
		}
		c.Println("Title cannot be empty.")
	}
	c.Print("Category: ")
	input.Category = strings.TrimSpace(c.ReadLine())
	input.Type = readChoice(c, "Type", []string{"numeric", "milestone"})
	input.TargetValue = readFloat(c, "Target value: ")
	c.Print("Unit (optional): ")
	input.Unit = strings.TrimSpace(c.ReadLine())
	c.Print("Deadline (YYYY-MM-DD, optional): ")
	input.Deadline = strings.TrimSpace(c.ReadLine())

	goal, err := svc.CreateGoal(context.Background(), input)
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("Created goal %q.\n", goal.Title)
}

func goalProgressCmd(c *ishell.Context) {
	goals, err := svc.ActiveGoals(context.Background())
	if err != nil {
		printErr(err)
		return
	}
	if len(goals) == 0 {
		c.Println("No active goals.")
		return
	}
	for i, g := range goals {
		c.Printf("%d. %s: %.1f/%.1f %s\n", i+1, g.Title, g.Current(), g.TargetValue, g.Unit)
	}
	c.Print("Which goal? ")
	n, err := strconv.Atoi(strings.TrimSpace(c.ReadLine()))
	if err != nil || n < 1 || n > len(goals) {
		c.Println("No such goal.")
		return
	}
	value := readFloat(c, "Progress value: ")

	goal, err := svc.UpdateGoalProgress(context.Background(), goals[n-1].ID, models.ProgressInput{Value: value})
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("%q is now at %.0f%%.\n", goal.Title, goal.Percent())
	if goal.Status == "completed" {
		c.Println("Goal completed. Nice work.")
	}
}

func analyticsCmd(c *ishell.Context) {
	analytics, err := svc.DashboardAnalytics(context.Background(), nil)
	if err != nil {
		printErr(err)
		return
	}
	for _, line := range analyticsLines(analytics) {
		c.Println(line)
	}
}

func socialCmd(c *ishell.Context) {
	ctx := context.Background()

	social, err := svc.SocialStats(ctx)
	if err != nil {
		printErr(err)
		return
	}
	c.Printf("You: %d habits, %d completions, %d days tracked, best streak %d\n",
		social.TotalHabits, social.TotalHabitsCompleted, social.TotalDaysTracked, social.CurrentStreak)

	board, err := svc.Leaderboard(ctx, nil)
	if err != nil {
		printErr(err)
		return
	}
	c.Println("\nLeaderboard")
	for _, entry := range board.Leaderboard {
		c.Printf("  %2d. %-20s %d\n", entry.Rank, entry.User.Name, entry.Score)
	}
}
