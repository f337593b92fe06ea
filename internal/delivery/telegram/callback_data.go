package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionAnswer   = "answer"
	actionNext     = "next"
	actionStations = "stations"
	actionQuiz     = "quiz"
)

// Quiz sub-actions.
const (
	quizStart = "start"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// intParam returns the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, error) {
	if i < 0 || i >= len(cd.Params) {
		return 0, fmt.Errorf("callback %q: missing parameter %d", cd.Raw, i)
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, fmt.Errorf("callback %q: parameter %d: %w", cd.Raw, i, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("callback %q: parameter %d is negative", cd.Raw, i)
	}
	return n, nil
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildAnswerCallback builds callback data for choosing an option of the question at position.
func buildAnswerCallback(position, optionIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(position), strconv.Itoa(optionIndex)},
	}.encode()
}

// buildNextCallback builds callback data for leaving the revealed question at position.
func buildNextCallback(position int) string {
	return callbackData{
		Action: actionNext,
		Params: []string{strconv.Itoa(position)},
	}.encode()
}

// buildStationsCallback builds callback data for a page of the station list.
func buildStationsCallback(page int) string {
	return callbackData{
		Action: actionStations,
		Params: []string{strconv.Itoa(page)},
	}.encode()
}

// buildQuizStartCallback builds callback data for starting a new pass.
func buildQuizStartCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart},
	}.encode()
}
