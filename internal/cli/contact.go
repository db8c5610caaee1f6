package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookbot/internal/book"
)

var contactFields = map[string]*string{
	"firstname":    new(string),
	"lastname":     new(string),
	"address":      new(string),
	"email":        new(string),
	"birthday":     new(string),
	"phone_number": new(string),
}

var addContactCmd = &cobra.Command{
	Use:   "add-contact",
	Short: "Add a contact and index it for search",
	RunE:  runAddContact,
}

func init() {
	rootCmd.AddCommand(addContactCmd)
	addContactCmd.Flags().StringVar(contactFields["firstname"], "firstname", "", "first name (required)")
	addContactCmd.Flags().StringVar(contactFields["lastname"], "lastname", "", "last name (required)")
	addContactCmd.Flags().StringVar(contactFields["address"], "address", "", "address")
	addContactCmd.Flags().StringVar(contactFields["email"], "email", "", "email address")
	addContactCmd.Flags().StringVar(contactFields["birthday"], "birthday", "", "birthday (YYYY-MM-DD)")
	addContactCmd.Flags().StringVar(contactFields["phone_number"], "phone", "", "phone number")
	addContactCmd.MarkFlagRequired("firstname")
	addContactCmd.MarkFlagRequired("lastname")
}

func runAddContact(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	values := make(map[string]string)
	for field, value := range contactFields {
		if *value != "" {
			values[field] = *value
		}
	}
	rec, err := book.NewRecord(book.ContactSchema(), values)
	if err != nil {
		return err
	}
	id, err := a.adapter.IndexRecord("contact", rec)
	if err != nil {
		return err
	}
	fmt.Printf("Added contact %q\n", id)
	return nil
}

var addNoteCmd = &cobra.Command{
	Use:   "add-note",
	Short: "Add a note and index it for search",
	RunE:  runAddNote,
}

var (
	noteTitle string
	noteBody  string
	noteTag   string
)

func init() {
	rootCmd.AddCommand(addNoteCmd)
	addNoteCmd.Flags().StringVar(&noteTitle, "title", "", "note title (required)")
	addNoteCmd.Flags().StringVar(&noteBody, "body", "", "note body (required)")
	addNoteCmd.Flags().StringVar(&noteTag, "tag", "", "tag")
	addNoteCmd.MarkFlagRequired("title")
	addNoteCmd.MarkFlagRequired("body")
}

func runAddNote(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	values := map[string]string{"title": noteTitle, "body": noteBody}
	if noteTag != "" {
		values["tag"] = noteTag
	}
	rec, err := book.NewRecord(book.NoteSchema(), values)
	if err != nil {
		return err
	}
	id, err := a.adapter.IndexRecord("note", rec)
	if err != nil {
		return err
	}
	fmt.Printf("Added note %q\n", id)
	return nil
}

var deleteCmd = &cobra.Command{
	Use:   "delete <book> <id>",
	Short: "Delete a record's search document by ID",
	Args:  cobra.ExactArgs(2),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.book(args[0]); err != nil {
		return err
	}
	deleted, err := a.adapter.DeleteRecord(args[0], args[1])
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("No document %q in %s\n", args[1], args[0])
		return nil
	}
	fmt.Printf("Deleted %q from %s\n", args[1], args[0])
	return nil
}
