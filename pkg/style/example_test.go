package style_test

import (
	"fmt"

	"github.com/matzehuels/treesvg/pkg/style"
)

func ExampleParse() {
	s, err := style.Parse("rgb(23%,5%,100%)@10")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s)
	fmt.Println(s.Color.Hex())
	fmt.Println(s.ColorID())
	// Output:
	// rgb(23%,5%,100%)@10
	// #3b0dff
	// rgb.23p.5p.100p
}

func ExampleParse_invalid() {
	_, err := style.Parse("bug_color@62")
	fmt.Println(err != nil)
	// Output:
	// true
}
