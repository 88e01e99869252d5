package main

import (
	"context"
	"errors"
	"flag"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/MixinNetwork/nfr/registry"
	"github.com/MixinNetwork/nfr/store"
)

func main() {
	ctx := context.Background()

	bp := flag.String("d", "~/.mixin/nfr/data", "database directory path")
	cp := flag.String("c", "~/.mixin/nfr/config.toml", "configuration file path")
	flag.Parse()

	if strings.HasPrefix(*cp, "~/") {
		usr, _ := user.Current()
		*cp = filepath.Join(usr.HomeDir, (*cp)[2:])
	}
	conf, err := registry.Setup(*cp)
	if err != nil {
		panic(err)
	}

	if strings.HasPrefix(*bp, "~/") {
		usr, _ := user.Current()
		*bp = filepath.Join(usr.HomeDir, (*bp)[2:])
	}
	db, err := store.OpenBadger(ctx, *bp)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	rgt := registry.NewRegistry(db)
	_, err = rgt.CollectionMetadata()
	if errors.Is(err, registry.ErrNotFound) {
		if conf.Creator == "" {
			panic("creator required in configuration")
		}
		block := registry.BlockContext{Time: time.Now()}
		err = rgt.Instantiate(conf, conf.Creator, block)
	}
	if err != nil {
		panic(err)
	}

	meta, err := rgt.CollectionMetadataAndExtension()
	if err != nil {
		panic(err)
	}
	count, err := rgt.NumTokens()
	if err != nil {
		panic(err)
	}
	logger.Printf("collection %s (%s) tokens %d attributes %d\n", meta.Name, meta.Symbol, count, len(meta.Attributes))
}
