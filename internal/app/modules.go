package app

import (
	"github.com/specialistvlad/gridvm/internal/registry"
	"github.com/specialistvlad/gridvm/modules/file"
	"github.com/specialistvlad/gridvm/modules/pgm"
	"github.com/specialistvlad/gridvm/modules/png"
	"github.com/specialistvlad/gridvm/modules/print"
	"github.com/specialistvlad/gridvm/modules/socketio"
	"github.com/specialistvlad/gridvm/modules/upload"
)

// coreModules is the definitive list of all modules that are compiled into
// the gridvm binary.
var coreModules = []registry.Module{
	&pgm.Module{},
	&png.Module{},
	&file.Module{},
	&print.Module{},
	&upload.Module{},
	&socketio.Module{},
}
