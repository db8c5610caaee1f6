package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookbot/internal/book"
	"bookbot/internal/domain"
)

var birthdaysDays int

var birthdaysCmd = &cobra.Command{
	Use:   "birthdays",
	Short: "List contacts with birthdays in the coming days",
	Long: `List indexed contacts whose birthday falls between today and the given
number of days ahead, comparing month and day only. Contacts without a
birthday are skipped.

Examples:
  bookbot birthdays            # birthdays today
  bookbot birthdays --days 7   # birthdays in the coming week`,
	RunE: runBirthdays,
}

func init() {
	rootCmd.AddCommand(birthdaysCmd)
	birthdaysCmd.Flags().IntVar(&birthdaysDays, "days", 0, "days ahead to include (0 = today only)")
}

func runBirthdays(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	dates := book.UpcomingDates(time.Now(), birthdaysDays)
	ids, err := a.engine.DocumentIDs("contact")
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			fmt.Println("No contacts indexed.")
			return nil
		}
		return err
	}

	found := 0
	for _, id := range ids {
		doc, ok := a.engine.GetDocument("contact", id)
		if !ok {
			continue
		}
		birthday, _ := doc["birthday"].(string)
		if !book.BirthdayInWindow(birthday, dates) {
			continue
		}
		found++
		fmt.Printf("%v %v — %s\n", doc["firstname"], doc["lastname"], birthday)
	}
	if found == 0 {
		fmt.Println("No upcoming birthdays.")
	}
	return nil
}
