package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRender(t *testing.T) {
	tp := NewTemplate()

	testCases := []struct {
		name         string
		templateName string
		data         any
		expectedErr  bool
	}{
		{
			name:         "success",
			templateName: notificationTemplate,
			data: Notification{
				Name:    "Sam",
				Email:   "sam@example.com",
				Comment: "Great read!",
				Slug:    "first-drive",
				PostURL: "https://blog.example.com/post/first-drive",
			},
			expectedErr: false,
		},
		{
			name:         "invalid template name",
			templateName: "invalid_template.html",
			data:         nil,
			expectedErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := tp.Render(tc.templateName, tc.data)
			assert.Equal(t, tc.expectedErr, err != nil)

			if err == nil {
				assert.Contains(t, msg.Subject, "first-drive")
				assert.NotContains(t, msg.Subject, "\n")
				assert.Contains(t, msg.Plain, "Great read!")
				assert.Contains(t, msg.HTML, `href="https://blog.example.com/post/first-drive"`)
			}
		})
	}
}

func TestTemplateRender_ParsesOnce(t *testing.T) {
	tp := NewTemplate()
	data := Notification{Name: "Sam", Email: "sam@example.com", Comment: "Hi", Slug: "first-drive"}

	for i := 0; i < 3; i++ {
		_, err := tp.Render(notificationTemplate, data)
		require.NoError(t, err)
	}

	assert.Len(t, tp.parsed, 1)

	_, err := tp.Render("invalid_template.html", data)
	require.Error(t, err)
	assert.Len(t, tp.parsed, 1)
}
