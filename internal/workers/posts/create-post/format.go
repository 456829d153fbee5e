package createpost

import (
	"fmt"
	"strings"
)

func FormatOutput(out *Output) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Successfully created post:\nID: %d\nTitle: %s\nStatus: %s", out.ID, out.Title, out.Status)

	if len(out.Images) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\nImages: %d/%d uploaded", out.ImagesUploaded, len(out.Images))
	for _, img := range out.Images {
		switch {
		case img.Error != "":
			fmt.Fprintf(&b, "\n- %s (%s): %s", img.Placeholder, img.Filename, img.Error)
		case !img.Replaced:
			fmt.Fprintf(&b, "\n- %s (%s): placeholder not found in content", img.Placeholder, img.Filename)
		}
	}
	if out.FeaturedMedia != 0 {
		fmt.Fprintf(&b, "\nFeatured media: %d", out.FeaturedMedia)
	}
	return b.String()
}
