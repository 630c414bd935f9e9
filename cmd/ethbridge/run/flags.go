// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/luxfi/ethbridge/config"
)

const ConfigFileKey = "config-file"

func AddFlags(flags *pflag.FlagSet) {
	flags.String(ConfigFileKey, "", "JSON config file. ETHBRIDGE_* environment variables override its values")
}

func ParseFlags(flags *pflag.FlagSet, args []string) (config.Config, error) {
	if err := flags.Parse(args); err != nil {
		return config.Config{}, err
	}

	path, err := flags.GetString(ConfigFileKey)
	if err != nil {
		return config.Config{}, err
	}

	var data []byte
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.ParseConfig(data)
}
