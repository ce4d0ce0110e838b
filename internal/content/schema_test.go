package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizladder/internal/quiz"
)

func TestDecode_Valid(t *testing.T) {
	raw := []byte(`{"topic":"Go","sets":[{"setId":"go-1","title":"Basics","questions":[
		{"id":1,"text":"Keyword for goroutines?","options":["go","async"],"correct":0},
		{"id":"two","text":"Zero value of int?","options":["nil","0"],"correct":1}]}]}`)

	b, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "Go", b.Topic)
	require.Len(t, b.Sets[0].Questions, 2)
	assert.Equal(t, quiz.ID("1"), b.Sets[0].Questions[0].ID)
	assert.Equal(t, quiz.ID("two"), b.Sets[0].Questions[1].ID)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"topic":`},
		{"missing sets", `{"topic":"Go"}`},
		{"empty topic", `{"topic":"","sets":[]}`},
		{"missing setId", `{"topic":"Go","sets":[{"title":"x","questions":[]}]}`},
		{"one option", `{"topic":"Go","sets":[{"setId":"a","title":"x","questions":[
			{"id":1,"text":"?","options":["only"],"correct":0}]}]}`},
		{"negative correct", `{"topic":"Go","sets":[{"setId":"a","title":"x","questions":[
			{"id":1,"text":"?","options":["a","b"],"correct":-1}]}]}`},
		{"boolean id", `{"topic":"Go","sets":[{"setId":"a","title":"x","questions":[
			{"id":true,"text":"?","options":["a","b"],"correct":0}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, quiz.ErrInvalidBundle), "err = %v", err)
		})
	}
}
