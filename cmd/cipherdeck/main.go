package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/cipherdeck/cipherdeck/bootstrap"
	"github.com/cipherdeck/cipherdeck/configuration"
)

var banner = `
  _____ _       _               _____            _
 / ____(_)     | |             |  __ \          | |
| |     _ _ __ | |__   ___ _ __| |  | | ___  ___| | __
| |    | | '_ \| '_ \ / _ \ '__| |  | |/ _ \/ __| |/ /
| |____| | |_) | | | |  __/ |  | |__| |  __/ (__|   <
 \_____|_| .__/|_| |_|\___|_|  |_____/ \___|\___|_|\_\
         | |
         |_|          version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	start, _ := bootstrap.Bootstrap(&c)
	start()
}
