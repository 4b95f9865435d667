// Command addrmask formats, validates and filters keystrokes for IPv4, IPv6
// and MAC address input.
package main

import "github.com/zlobste/addrmask/internal/cli"

func main() {
	cli.Execute()
}
