package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestCommentValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		comment Comment
		wantErr bool
	}{
		{
			name:    "post comment",
			comment: Comment{UserID: 1, PostID: uintPtr(2), Text: "fix the streetlight"},
		},
		{
			name:    "complaint comment",
			comment: Comment{UserID: 1, ComplaintID: uintPtr(3), Text: "same issue on my street"},
		},
		{
			name:    "no parent",
			comment: Comment{UserID: 1, Text: "orphan"},
			wantErr: true,
		},
		{
			name:    "both parents",
			comment: Comment{UserID: 1, PostID: uintPtr(2), ComplaintID: uintPtr(3), Text: "twice"},
			wantErr: true,
		},
		{
			name:    "empty text",
			comment: Comment{UserID: 1, PostID: uintPtr(2)},
			wantErr: true,
		},
		{
			name:    "text too long",
			comment: Comment{UserID: 1, PostID: uintPtr(2), Text: strings.Repeat("x", MaxCommentLen+1)},
			wantErr: true,
		},
		{
			// The limit counts characters, not bytes.
			name:    "multibyte text at limit",
			comment: Comment{UserID: 1, PostID: uintPtr(2), Text: strings.Repeat("é", MaxCommentLen)},
		},
		{
			name:    "multibyte text over limit",
			comment: Comment{UserID: 1, PostID: uintPtr(2), Text: strings.Repeat("é", MaxCommentLen+1)},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.comment.Validate()
			if tc.wantErr {
				require.Error(t, err)
				var appErr *AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
