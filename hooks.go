// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"strings"

	"github.com/apex/log"

	mylog "github.com/staranto/modcli/internal/log"
	"github.com/staranto/modcli/internal/result"
)

// EnvPrefix is prepended to the upper-cased destination name when apply_env
// looks for a value.
const EnvPrefix = "MODCLI_"

// applyLogLevel raises the log level by the number of -v given at the root.
func applyLogLevel(_ context.Context, res *result.Result) error {
	count, _ := res.Global["verbose"].(int)
	level := mylog.LevelForVerbosity(mylog.CurrentLevel(), count)
	log.SetLevel(level)
	log.Debugf("log level %s after %d -v", level, count)
	return nil
}

// applyEnv fills string values left empty on the command line from
// MODCLI_<DEST>.
func applyEnv(_ context.Context, res *result.Result) error {
	for dest, v := range res.Values {
		if s, ok := v.(string); !ok || s != "" {
			continue
		}
		key := EnvPrefix + strings.ToUpper(dest)
		if env, ok := os.LookupEnv(key); ok {
			log.WithField("dest", dest).Debugf("value from %s", key)
			res.Values[dest] = env
		}
	}
	return nil
}
