package cmd

import (
	"fmt"
	"time"

	midilib "github.com/scorefall/scorefall-ink/midi"
	"github.com/scorefall/scorefall-ink/model"
	"github.com/scorefall/scorefall-ink/notation"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
)

func init() {
	recordCmd.Flags().BoolVar(&recordFlats, "flats", false, "spell black keys as flats")
	rootCmd.AddCommand(recordCmd)
}

var recordFlats bool

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Transcribes MIDI input",
	Long:  `Listens on the first MIDI input port and prints each note as notation text.`,
	Run: func(cmd *cobra.Command, args []string) {
		record()
	},
}

func record() {
	defer midi.CloseDriver()
	in, err := midi.InPort(0)
	if err != nil {
		fmt.Println("can't find a MIDI input port")
		return
	}

	started := make(map[uint8]time.Time)

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			started[key] = time.Now()
		case msg.GetNoteEnd(&ch, &key):
			t0, ok := started[key]
			if !ok {
				return
			}
			delete(started, key)
			tok := midilib.TokenForKey(key, quantize(time.Since(t0)), recordFlats)
			fmt.Printf("%v\n", notation.Encode([]model.Token{tok}))
		default:
			// ignore
		}
	})
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	time.Sleep(time.Second * 5000)
	stop()
}

// quantize snaps a held duration to the nearest power-of-two note value,
// assuming 120 bpm so a quarter note is half a second.
func quantize(held time.Duration) model.Fraction {
	beats := held.Seconds() * 2
	den := uint16(128)
	for d := uint16(1); d <= 128; d *= 2 {
		if beats >= 4.0/float64(d)*0.75 {
			den = d
			break
		}
	}
	return model.NewFraction(1, den)
}
