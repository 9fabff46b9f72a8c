package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/starcog/cogconfigs"
	"github.com/reusee/starcog/cogs"
	"github.com/reusee/starcog/logs"
	"github.com/reusee/starcog/starlarks"
)

type Module struct {
	dscope.Module
	Cogs      cogs.Module
	Starlarks starlarks.Module
	Logs      logs.Module
	Configs   cogconfigs.Module
}
