package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"photo.png", "image/png"},
		{"PHOTO.PNG", "image/png"},
		{"anim.gif", "image/gif"},
		{"modern.webp", "image/webp"},
		{"camera.jpg", "image/jpeg"},
		{"camera.JPEG", "image/jpeg"},
		{"vector.svg", "image/jpeg"},
		{"noextension", "image/jpeg"},
		{"archive.tar.gz", "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentTypeFor(tt.filename))
		})
	}
}

func TestReplaceFirst(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		placeholder string
		replacement string
		want        string
		replaced    bool
	}{
		{"simple", "a {IMG} b", "{IMG}", "X", "a X b", true},
		{"first occurrence only", "{IMG} {IMG}", "{IMG}", "X", "X {IMG}", true},
		{"absent", "no tokens here", "{IMG}", "X", "no tokens here", false},
		{"empty placeholder", "abc", "", "X", "abc", false},
		{"pattern characters are literal", "a (.*) b", "(.*)", "X", "a X b", true},
		{"dollar in replacement is literal", "a {P} b", "{P}", "$1$&", "a $1$& b", true},
		{"placeholder at end", "trail {P}", "{P}", "X", "trail X", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, replaced := ReplaceFirst(tt.content, tt.placeholder, tt.replacement)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.replaced, replaced)
		})
	}
}

func TestReplaceFirst_UnmatchedIsStable(t *testing.T) {
	content := "nothing to see"
	once, r1 := ReplaceFirst(content, "{MISSING}", "X")
	twice, r2 := ReplaceFirst(once, "{MISSING}", "X")
	assert.Equal(t, content, once)
	assert.Equal(t, once, twice)
	assert.False(t, r1)
	assert.False(t, r2)
}

func TestImageMarkup_EscapesDynamicValues(t *testing.T) {
	got := ImageMarkup(`https://x.test/a.png?x=1&y="2"`, `evil" onerror="alert(1).png`, 42)
	assert.Equal(t,
		`<img src="https://x.test/a.png?x=1&amp;y=&#34;2&#34;" alt="evil&#34; onerror=&#34;alert(1).png" class="wp-image-42" />`,
		got)
}

func TestFailureMarker(t *testing.T) {
	assert.Equal(t, "[upload error: a&lt;b&gt;.png - File not found: /tmp/x]", FailureMarker("a<b>.png", "File not found: /tmp/x"))
	assert.Equal(t, "[upload error: photo.png - Media upload error: Sorry, you are not allowed to upload this file type.]",
		FailureMarker("photo.png", "Media upload error: Sorry, you are not allowed to upload this file type."))
}
