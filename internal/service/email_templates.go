package service

import "fmt"

func recapReadyEmailTemplate(name, monthName, recapURL, appName string) (string, string) {
	if name == "" {
		name = "Golfer"
	}
	subject := fmt.Sprintf("Your %s Golf Improvement Recap is Ready!", monthName)
	body := fmt.Sprintf(`Hi %s,

Your monthly golf improvement recap for %s is now ready to view. See how your practice efforts correlated with your handicap progress this month.

Check it out now at: %s

Keep improving!
The %s Team`, name, monthName, recapURL, appName)

	return subject, body
}

func welcomeEmailTemplate(name, dashboardURL, appName string) (string, string) {
	greeting := "Welcome!"
	if name != "" {
		greeting = fmt.Sprintf("Welcome, %s!", name)
	}
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`%s

Your account is ready. Set a goal, log your first practice session, and we'll start tracking your progress.

Get started: %s

If you have questions, reach out to our support team.

Best,
The %s Team`, greeting, dashboardURL, appName)

	return subject, body
}
