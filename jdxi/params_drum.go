package jdxi

import "fmt"

var velocityCurves = []string{"FIXED", "1", "2", "3", "4", "5", "6", "7"}

const wmtLayerSize = 0x1D

// wmtLayer is one of the four wave layers of a drum partial.
func wmtLayer(n, base int) []Descriptor {
	p := func(s string) string { return fmt.Sprintf("wmt%d_%s", n, s) }
	return []Descriptor{
		toggle(p("wave_switch"), base+0x00),
		param(p("wave_group_type"), base+0x01, 0, 0),
		nibbles(p("wave_group_id"), base+0x02, 4, 0, 16384, 0),
		nibbles(p("wave_number_l"), base+0x06, 4, 0, 16384, 0),
		nibbles(p("wave_number_r"), base+0x0A, 4, 0, 16384, 0),
		choice(p("wave_gain"), base+0x0E, "-6dB", "0dB", "+6dB", "+12dB"),
		toggle(p("wave_fxm_switch"), base+0x0F),
		param(p("wave_fxm_color"), base+0x10, 0, 3),
		param(p("wave_fxm_depth"), base+0x11, 0, 16),
		toggle(p("wave_tempo_sync"), base+0x12),
		centered(p("wave_coarse_tune"), base+0x13, -48, 48),
		fineTune(p("wave_fine_tune"), base+0x14),
		pan(p("wave_pan"), base+0x15),
		toggle(p("wave_random_pan_switch"), base+0x16),
		choice(p("wave_alternate_pan_switch"), base+0x17, "OFF", "ON", "REVERSE"),
		level(p("wave_level"), base+0x18),
		param(p("velocity_range_lower"), base+0x19, 1, 127),
		param(p("velocity_range_upper"), base+0x1A, 1, 127),
		level(p("velocity_fade_width_lower"), base+0x1B),
		level(p("velocity_fade_width_upper"), base+0x1C),
	}
}

// envelope returns count consecutive parameters named prefix1..prefixN.
func envelope(prefix string, off, first, count int, mk func(string, int) Descriptor) []Descriptor {
	out := make([]Descriptor, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, mk(fmt.Sprintf("%s%d", prefix, first+i), off+i))
	}
	return out
}

var drumCommon = newSchema("Drum Kit Common", 0x12,
	text("kit_name", 0x00, 12),
	level("kit_level", 0x0C),
)

var drumPartial = newSchema("Drum Kit Partial", 1<<7|0x43, drumPartialParams()...)

func drumPartialParams() []Descriptor {
	ps := []Descriptor{
		text("partial_name", 0x00, 12),
		choice("assign_type", 0x0C, "MULTI", "SINGLE"),
		param("mute_group", 0x0D, 0, 31),
		level("partial_level", 0x0E),
		level("partial_coarse_tune", 0x0F),
		fineTune("partial_fine_tune", 0x10),
		param("partial_random_pitch_depth", 0x11, 0, 30),
		pan("partial_pan", 0x12),
		param("partial_random_pan_depth", 0x13, 0, 63),
		sens("partial_alternate_pan_depth", 0x14),
		choice("partial_env_mode", 0x15, "NO-SUS", "SUS"),
		level("partial_output_level", 0x16),
		level("partial_chorus_send_level", 0x19),
		level("partial_reverb_send_level", 0x1A),
		choice("partial_output_assign", 0x1B, "EFX1", "EFX2", "DLY", "REV", "DIR"),
		param("partial_pitch_bend_range", 0x1C, 0, 48),
		toggle("partial_receive_expression", 0x1D),
		toggle("partial_receive_hold1", 0x1E),
		choice("wmt_velocity_control", 0x20, "OFF", "ON", "RANDOM"),
	}
	for n := 1; n <= 4; n++ {
		ps = append(ps, wmtLayer(n, 0x21+(n-1)*wmtLayerSize)...)
	}

	// Second page, 01 15 onwards.
	const page = 1 << 7
	ps = append(ps,
		centered("pitch_env_depth", page|0x15, -12, 12),
		sens("pitch_env_velocity_sens", page|0x16),
		sens("pitch_env_time1_velocity_sens", page|0x17),
		sens("pitch_env_time4_velocity_sens", page|0x18),
	)
	ps = append(ps, envelope("pitch_env_time", page|0x19, 1, 4, level)...)
	ps = append(ps, envelope("pitch_env_level", page|0x1D, 0, 5, sens)...)
	ps = append(ps,
		choice("tvf_filter_type", page|0x22, "OFF", "LPF", "BPF", "HPF", "PKG", "LPF2", "LPF3"),
		level("tvf_cutoff_frequency", page|0x23),
		choice("tvf_cutoff_velocity_curve", page|0x24, velocityCurves...),
		sens("tvf_cutoff_velocity_sens", page|0x25),
		level("tvf_resonance", page|0x26),
		sens("tvf_resonance_velocity_sens", page|0x27),
		sens("tvf_env_depth", page|0x28),
		choice("tvf_env_velocity_curve", page|0x29, velocityCurves...),
		sens("tvf_env_velocity_sens", page|0x2A),
		sens("tvf_env_time1_velocity_sens", page|0x2B),
		sens("tvf_env_time4_velocity_sens", page|0x2C),
	)
	ps = append(ps, envelope("tvf_env_time", page|0x2D, 1, 4, level)...)
	ps = append(ps, envelope("tvf_env_level", page|0x31, 0, 5, level)...)
	ps = append(ps,
		choice("tva_level_velocity_curve", page|0x36, velocityCurves...),
		sens("tva_level_velocity_sens", page|0x37),
		sens("tva_env_time1_velocity_sens", page|0x38),
		sens("tva_env_time4_velocity_sens", page|0x39),
	)
	ps = append(ps, envelope("tva_env_time", page|0x3A, 1, 4, level)...)
	ps = append(ps, envelope("tva_env_level", page|0x3E, 1, 3, level)...)
	return append(ps,
		toggle("one_shot_mode", page|0x41),
		pan("relative_level", page|0x42),
	)
}
