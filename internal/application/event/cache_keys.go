package event

import "fmt"

const cacheKeyList = "events:list"

func cacheKeyEventDetails(slug string) string {
	return fmt.Sprintf("event:slug:%s", slug)
}
