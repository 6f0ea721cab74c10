// Command dashboard serves and queries the invoice dashboard data.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	a := &app{}

	err := newRootCmd(a).Execute()
	err = errors.Join(err, a.close())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
