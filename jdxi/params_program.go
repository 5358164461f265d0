package jdxi

import "fmt"

// effectParams returns count nibble-packed effect parameters, each stored
// around 32768 with a +/-20000 range.
func effectParams(off, count int) []Descriptor {
	out := make([]Descriptor, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, nibbles(fmt.Sprintf("parameter%d", i+1), off+4*i, 4, -20000, 20000, 32768))
	}
	return out
}

var programCommon = newSchema("Program Common", 0x1F,
	text("program_name", 0x00, 12),
	level("program_level", 0x10),
	nibbles("program_tempo", 0x11, 4, 500, 30000, 0),
	choice("vocal_effect", 0x16, "OFF", "VOCODER", "AUTO-PITCH"),
	param("vocal_effect_number", 0x1C, 0, 20),
	choice("vocal_effect_part", 0x1D, "PART1", "PART2"),
	toggle("auto_note_switch", 0x1E),
)

var programVocalEffect = newSchema("Program Vocal Effect", 0x18,
	level("level", 0x00),
	pan("pan", 0x01),
	level("delay_send_level", 0x02),
	level("reverb_send_level", 0x03),
	choice("output_assign", 0x04, "EFX1", "EFX2", "DLY", "REV", "DIR"),
	toggle("auto_pitch_switch", 0x05),
	choice("auto_pitch_type", 0x06, "SOFT", "HARD", "ELECTRIC1", "ELECTRIC2"),
	choice("auto_pitch_scale", 0x07, "CHROMATIC", "Maj(Min)"),
	param("auto_pitch_key", 0x08, 0, 23),
	choice("auto_pitch_note", 0x09, "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"),
	centered("auto_pitch_gender", 0x0A, -10, 10),
	centered("auto_pitch_octave", 0x0B, -1, 1),
	param("auto_pitch_balance", 0x0C, 0, 100),
	toggle("vocoder_switch", 0x0D),
	choice("vocoder_envelope", 0x0E, "SHARP", "SOFT", "LONG"),
	level("vocoder_level", 0x0F),
	level("vocoder_mic_sens", 0x10),
	level("vocoder_synth_level", 0x11),
	level("vocoder_mic_mix", 0x12),
	param("vocoder_mic_hpf", 0x13, 0, 13),
)

var programEffect1 = newSchema("Program Effect 1", 1<<7|0x11, append([]Descriptor{
	choice("efx1_type", 0x00, "THRU", "DISTORTION", "FUZZ", "COMPRESSOR", "BIT CRUSHER"),
	level("efx1_level", 0x01),
	level("efx1_delay_send_level", 0x02),
	level("efx1_reverb_send_level", 0x03),
	choice("efx1_output_assign", 0x04, "DIR", "EFX2"),
}, effectParams(0x11, 32)...)...)

var programEffect2 = newSchema("Program Effect 2", 1<<7|0x11, append([]Descriptor{
	// Types 1..4 are unused by effect 2.
	choice("efx2_type", 0x00, "THRU", "", "", "", "", "FLANGER", "PHASER", "RING MOD", "SLICER"),
	level("efx2_level", 0x01),
	level("efx2_delay_send_level", 0x02),
	level("efx2_reverb_send_level", 0x03),
}, effectParams(0x11, 32)...)...)

var programDelay = newSchema("Program Delay", 0x64, append([]Descriptor{
	level("delay_level", 0x01),
	level("delay_reverb_send_level", 0x03),
}, effectParams(0x04, 24)...)...)

var programReverb = newSchema("Program Reverb", 0x63, append([]Descriptor{
	level("reverb_level", 0x01),
}, effectParams(0x03, 24)...)...)

var programPart = newSchema("Program Part", 0x4C,
	Descriptor{Name: "receive_channel", Offset: 0x00, Size: 1, Min: 1, Max: 16, Zero: -1},
	toggle("part_switch", 0x01),
	level("tone_bank_select_msb", 0x06),
	level("tone_bank_select_lsb", 0x07),
	level("tone_program_number", 0x08),
	level("part_level", 0x09),
	pan("part_pan", 0x0A),
	centered("part_coarse_tune", 0x0B, -48, 48),
	fineTune("part_fine_tune", 0x0C),
	choice("part_mono_poly", 0x0D, "MONO", "POLY", "TONE"),
	choice("part_legato_switch", 0x0E, "OFF", "ON", "TONE"),
	param("part_pitch_bend_range", 0x0F, 0, 25),
	choice("part_portamento_switch", 0x10, "OFF", "ON", "TONE"),
	nibbles("part_portamento_time", 0x11, 2, 0, 128, 0),
	pan("part_cutoff_offset", 0x13),
	pan("part_resonance_offset", 0x14),
	pan("part_attack_time_offset", 0x15),
	pan("part_decay_time_offset", 0x16),
	pan("part_release_time_offset", 0x17),
	pan("part_vibrato_rate", 0x18),
	pan("part_vibrato_depth", 0x19),
	pan("part_vibrato_delay", 0x1A),
	octaveShift("part_octave_shift", 0x1B),
	sens("part_velocity_sens_offset", 0x1C),
)

var programZone = newSchema("Program Zone", 0x24,
	toggle("arpeggio_switch", 0x19),
	octaveShift("zone_octave_shift", 0x23),
)

var programController = newSchema("Program Controller", 0x0C,
	choice("arpeggio_grid", 0x01, "04_", "08_", "08L", "08H", "08t", "16_", "16L", "16H", "16t"),
	choice("arpeggio_duration", 0x02, "30", "40", "50", "60", "70", "80", "90", "100", "120", "FUL"),
	toggle("arpeggio_switch", 0x03),
	level("arpeggio_style", 0x05),
	choice("arpeggio_motif", 0x06, "UP/L", "UP/H", "UP/_", "dn/L", "dn/H", "dn/_", "Ud/L", "Ud/H", "Ud/_", "rn/L", "rn/_", "PHRASE"),
	octaveShift("arpeggio_octave_range", 0x07),
	param("arpeggio_accent_rate", 0x09, 0, 100),
	level("arpeggio_velocity", 0x0A),
)
