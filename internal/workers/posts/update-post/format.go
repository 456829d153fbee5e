package updatepost

import "fmt"

func FormatOutput(out *Output) string {
	return fmt.Sprintf("Successfully updated post:\nID: %d\nTitle: %s\nStatus: %s", out.ID, out.Title, out.Status)
}
