// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"os"

	"github.com/taibuivan/shelfy/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
