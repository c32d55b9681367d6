package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mateconpizza/bark/internal/bookmark"
	"github.com/mateconpizza/bark/internal/command"
	"github.com/mateconpizza/bark/internal/db"
)

const msgInvalidID = "Invalid ID"

// required prompts until the answer is not empty.
func (s *Shell) required(label string) (string, error) {
	for {
		v, err := s.term.Prompt(label + ": ")
		if err != nil {
			return "", err
		}

		if v != "" {
			return v, nil
		}
	}
}

func (s *Shell) optional(label string) (string, error) {
	return s.term.Prompt(label + ": ")
}

// readID prompts until the answer is a positive integer.
func (s *Shell) readID(label string) (int64, error) {
	for {
		v, err := s.required(label)
		if err != nil {
			return 0, err
		}

		id, err := strconv.ParseInt(v, 10, 64)
		if err == nil && id > 0 {
			return id, nil
		}

		fmt.Fprintln(s.out, msgInvalidID)
	}
}

func (s *Shell) newBookmarkData() (*bookmark.Bookmark, error) {
	title, err := s.required("Title")
	if err != nil {
		return nil, err
	}

	url, err := s.required("URL")
	if err != nil {
		return nil, err
	}

	notes, err := s.optional("Notes")
	if err != nil {
		return nil, err
	}

	return bookmark.New(title, url, notes), nil
}

func (s *Shell) updateData() (command.UpdateData, error) {
	var d command.UpdateData

	id, err := s.readID("Enter a bookmark ID to update")
	if err != nil {
		return d, err
	}

	label := fmt.Sprintf("Enter the column to update (%s): ", strings.Join(bookmark.Editable, ", "))
	var col string
	for col == "" {
		col, err = s.term.Input(label, bookmark.Editable)
		if err != nil {
			return d, err
		}
	}

	value, err := s.required("Enter the update value")
	if err != nil {
		return d, err
	}

	d.ID = id
	d.Fields = db.Fields{db.F(strings.ToLower(col), value)}

	return d, nil
}

func (s *Shell) importData(defaultUser string) (command.ImportData, error) {
	var d command.ImportData

	var (
		user string
		err  error
	)
	if defaultUser == "" {
		user, err = s.required("GitHub username")
	} else {
		user, err = s.optional(fmt.Sprintf("GitHub username [%s]", defaultUser))
		if user == "" {
			user = defaultUser
		}
	}
	if err != nil {
		return d, err
	}

	preserve, err := s.term.Confirm("Preserve timestamps", "n")
	if err != nil {
		return d, err
	}

	d.Username = user
	d.PreserveTimestamps = preserve

	return d, nil
}
