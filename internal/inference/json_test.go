package inference

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "plain object",
			content: `{"emotion":"positive"}`,
			want:    `{"emotion":"positive"}`,
		},
		{
			name:    "code fence with language",
			content: "```json\n{\"events\":[\"跑步\"]}\n```",
			want:    `{"events":["跑步"]}`,
		},
		{
			name:    "text around the object",
			content: `Here you go: {"a":{"b":1}} hope it helps {"c":2}`,
			want:    `{"a":{"b":1}}`,
		},
		{
			name:    "braces inside strings",
			content: `{"text":"a } b { \"c\""}`,
			want:    `{"text":"a } b { \"c\""}`,
		},
		{
			name:    "stray closing brace before the object",
			content: `} {"ok":true}`,
			want:    `{"ok":true}`,
		},
		{
			name:    "incomplete object",
			content: `{"emotion":"positive"`,
			wantErr: true,
		},
		{
			name:    "no object",
			content: `I cannot help with that.`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJSONObject(t *testing.T) {
	var got struct {
		Emotion string   `json:"emotion"`
		Events  []string `json:"events"`
	}
	require.NoError(t, DecodeJSONObject("```\n{\"emotion\":\"neutral\",\"events\":[\"上班\"]}\n```", &got))
	assert.Equal(t, "neutral", got.Emotion)
	assert.Equal(t, []string{"上班"}, got.Events)

	assert.Error(t, DecodeJSONObject(`{"emotion": 1}`, &got))
}

func TestDecodeJSONObject_LongCJKReplyKeepsValidUTF8(t *testing.T) {
	var got struct {
		Affirmation int `json:"affirmation"`
	}
	content := `{"affirmation":"` + strings.Repeat("今天也认真生活了", 40) + `"}`

	err := DecodeJSONObject(content, &got)
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), "...")

	_, err = ExtractJSONObject(`{"affirmation":"` + strings.Repeat("谢谢", 200))
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
}
