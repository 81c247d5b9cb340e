package segmentlcd_test

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/DrJosh9000/segmentlcd"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	seg, err := segmentlcd.NewPinPort(
		gpioreg.ByName("5"),
		gpioreg.ByName("6"),
		gpioreg.ByName("13"),
		gpioreg.ByName("19"),
		gpioreg.ByName("26"),
		gpioreg.ByName("16"),
		gpioreg.ByName("20"),
		gpioreg.ByName("21"),
	)
	if err != nil {
		log.Fatal(err)
	}
	com, err := segmentlcd.NewPinPort([]gpio.PinIO{
		0: gpioreg.ByName("17"),
		1: gpioreg.ByName("27"),
		2: gpioreg.ByName("22"),
		3: gpioreg.ByName("23"),
	}...)
	if err != nil {
		log.Fatal(err)
	}
	dev, err := segmentlcd.New(seg, com, &segmentlcd.Opts{
		OnCount: func(d segmentlcd.Digits) { log.Printf("showing %s", d) },
	})
	if err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := dev.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
