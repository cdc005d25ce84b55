// Package parser extracts flashcard entries from markdown deck files.
//
// A deck file is plain markdown where cards are written as labelled blocks:
//
//	Q: What is the capital of France?
//	A: Paris
//
// A block runs until the next label, a "---" separator, or end of file, so
// questions and answers may span multiple lines. An entry without a question
// is dropped.
package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Entry is one parsed question/answer pair, not yet attached to a subject.
type Entry struct {
	Question string
	Answer   string
}

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	separator      = "---"
)

type state int

const (
	seeking state = iota
	readingQuestion
	readingAnswer
)

// ParseFile reads a deck file from the given path and extracts all entries.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all entries.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	var current Entry
	var block []string
	currentState := seeking

	closeBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch currentState {
		case readingQuestion:
			current.Question = content
		case readingAnswer:
			current.Answer = content
		}
		block = nil
	}

	finishEntry := func() {
		closeBlock()
		if current.Question != "" {
			entries = append(entries, current)
		}
		current = Entry{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == separator:
			finishEntry()

		case strings.HasPrefix(line, questionPrefix):
			closeBlock()
			if currentState != seeking {
				// A new question always starts a new card.
				finishEntry()
			}
			currentState = readingQuestion
			block = append(block, strings.TrimPrefix(strings.TrimPrefix(line, questionPrefix), " "))

		case strings.HasPrefix(line, answerPrefix):
			closeBlock()
			currentState = readingAnswer
			block = append(block, strings.TrimPrefix(strings.TrimPrefix(line, answerPrefix), " "))

		default:
			if currentState != seeking {
				block = append(block, line)
			}
		}
	}

	finishEntry() // Finish the very last entry in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
