package jdxi

var (
	lfoShapes = []string{"TRI", "SIN", "SAW", "SQR", "S&H", "RND"}
	syncNotes = []string{
		"16", "12", "8", "4", "2", "1", "3/4", "2/3", "1/2", "3/8",
		"1/3", "1/4", "3/16", "1/6", "1/8", "3/32", "1/12", "1/16", "1/24", "1/32",
	}
)

func octaveShift(name string, off int) Descriptor {
	return centered(name, off, -3, 3)
}

func keyfollow(name string, off int) Descriptor {
	// Stored 54..74; each step is 10% of keyfollow.
	return centered(name, off, -10, 10)
}

func fineTune(name string, off int) Descriptor {
	return centered(name, off, -50, 50)
}

func coarseTune(name string, off int) Descriptor {
	return centered(name, off, -24, 24)
}

var digitalCommon = newSchema("Digital Synth Common", 0x40,
	text("tone_name", 0x00, 12),
	level("tone_level", 0x0C),
	toggle("portamento_switch", 0x12),
	level("portamento_time", 0x13),
	toggle("mono_switch", 0x14),
	octaveShift("octave_shift", 0x15),
	param("pitch_bend_range_up", 0x16, 0, 24),
	param("pitch_bend_range_down", 0x17, 0, 24),
	toggle("partial1_switch", 0x19),
	toggle("partial1_select", 0x1A),
	toggle("partial2_switch", 0x1B),
	toggle("partial2_select", 0x1C),
	toggle("partial3_switch", 0x1D),
	toggle("partial3_select", 0x1E),
	choice("ring_switch", 0x1F, "OFF", "---", "ON"),
	toggle("unison_switch", 0x2E),
	choice("portamento_mode", 0x31, "NORMAL", "LEGATO"),
	toggle("legato_switch", 0x32),
	level("analog_feel", 0x34),
	level("wave_shape", 0x35),
	level("tone_category", 0x36),
	nibbles("phrase_number", 0x37, 4, 0, 65535, 0),
	octaveShift("phrase_octave_shift", 0x3B),
	choice("unison_size", 0x3C, "2", "4", "6", "8"),
)

var digitalPartial = newSchema("Digital Synth Partial", 0x3D,
	choice("osc_wave", 0x00, "SAW", "SQR", "PW-SQR", "TRI", "SINE", "NOISE", "SUPER-SAW", "PCM"),
	choice("osc_wave_variation", 0x01, "A", "B", "C"),
	coarseTune("osc_pitch", 0x03),
	fineTune("osc_detune", 0x04),
	level("osc_pulse_width_mod_depth", 0x05),
	level("osc_pulse_width", 0x06),
	level("osc_pitch_env_attack_time", 0x07),
	level("osc_pitch_env_decay", 0x08),
	sens("osc_pitch_env_depth", 0x09),
	choice("filter_mode", 0x0A, "BYPASS", "LPF", "HPF", "BPF", "PKG", "LPF2", "LPF3", "LPF4"),
	choice("filter_slope", 0x0B, "-12dB", "-24dB"),
	level("filter_cutoff", 0x0C),
	keyfollow("filter_cutoff_keyfollow", 0x0D),
	sens("filter_env_velocity_sens", 0x0E),
	level("filter_resonance", 0x0F),
	level("filter_env_attack_time", 0x10),
	level("filter_env_decay_time", 0x11),
	level("filter_env_sustain_level", 0x12),
	level("filter_env_release_time", 0x13),
	sens("filter_env_depth", 0x14),
	level("amp_level", 0x15),
	sens("amp_level_velocity_sens", 0x16),
	level("amp_env_attack_time", 0x17),
	level("amp_env_decay_time", 0x18),
	level("amp_env_sustain_level", 0x19),
	level("amp_env_release_time", 0x1A),
	pan("amp_pan", 0x1B),
	choice("lfo_shape", 0x1C, lfoShapes...),
	level("lfo_rate", 0x1D),
	toggle("lfo_tempo_sync_switch", 0x1E),
	choice("lfo_tempo_sync_note", 0x1F, syncNotes...),
	level("lfo_fade_time", 0x20),
	toggle("lfo_key_trigger", 0x21),
	sens("lfo_pitch_depth", 0x22),
	sens("lfo_filter_depth", 0x23),
	sens("lfo_amp_depth", 0x24),
	sens("lfo_pan_depth", 0x25),
	choice("mod_lfo_shape", 0x26, lfoShapes...),
	level("mod_lfo_rate", 0x27),
	toggle("mod_lfo_tempo_sync_switch", 0x28),
	choice("mod_lfo_tempo_sync_note", 0x29, syncNotes...),
	level("osc_pulse_width_shift", 0x2A),
	sens("mod_lfo_pitch_depth", 0x2C),
	sens("mod_lfo_filter_depth", 0x2D),
	sens("mod_lfo_amp_depth", 0x2E),
	sens("mod_lfo_pan_depth", 0x2F),
	sens("cutoff_aftertouch_sens", 0x30),
	sens("level_aftertouch_sens", 0x31),
	choice("wave_gain", 0x34, "-6dB", "0dB", "+6dB", "+12dB"),
	nibbles("wave_number", 0x35, 4, 0, 16384, 0),
	level("hpf_cutoff", 0x39),
	level("super_saw_detune", 0x3A),
	sens("mod_lfo_rate_control", 0x3B),
	keyfollow("amp_level_keyfollow", 0x3C),
)

var digitalModify = newSchema("Digital Synth Modify", 0x25,
	level("attack_time_interval_sens", 0x01),
	level("release_time_interval_sens", 0x02),
	level("portamento_time_interval_sens", 0x03),
	choice("envelope_loop_mode", 0x04, "OFF", "FREE-RUN", "TEMPO-SYNC"),
	choice("envelope_loop_sync_note", 0x05, syncNotes...),
	toggle("chromatic_portamento", 0x06),
)

var analogTone = newSchema("Analog Synth Tone", 0x40,
	text("tone_name", 0x00, 12),
	choice("lfo_shape", 0x0D, lfoShapes...),
	level("lfo_rate", 0x0E),
	level("lfo_fade_time", 0x0F),
	toggle("lfo_tempo_sync_switch", 0x10),
	choice("lfo_tempo_sync_note", 0x11, syncNotes...),
	sens("lfo_pitch_depth", 0x12),
	sens("lfo_filter_depth", 0x13),
	sens("lfo_amp_depth", 0x14),
	toggle("lfo_key_trigger", 0x15),
	choice("osc_waveform", 0x16, "SAW", "TRI", "PW-SQR"),
	coarseTune("osc_pitch_coarse", 0x17),
	fineTune("osc_pitch_fine", 0x18),
	level("osc_pulse_width", 0x19),
	level("osc_pulse_width_mod_depth", 0x1A),
	sens("osc_pitch_env_velocity_sens", 0x1B),
	level("osc_pitch_env_attack_time", 0x1C),
	level("osc_pitch_env_decay", 0x1D),
	sens("osc_pitch_env_depth", 0x1E),
	choice("sub_oscillator_type", 0x1F, "OFF", "OCT-1", "OCT-2"),
	choice("filter_switch", 0x20, "BYPASS", "LPF"),
	level("filter_cutoff", 0x21),
	keyfollow("filter_cutoff_keyfollow", 0x22),
	level("filter_resonance", 0x23),
	sens("filter_env_velocity_sens", 0x24),
	level("filter_env_attack_time", 0x25),
	level("filter_env_decay_time", 0x26),
	level("filter_env_sustain_level", 0x27),
	level("filter_env_release_time", 0x28),
	sens("filter_env_depth", 0x29),
	level("amp_level", 0x2A),
	keyfollow("amp_level_keyfollow", 0x2B),
	sens("amp_level_velocity_sens", 0x2C),
	level("amp_env_attack_time", 0x2D),
	level("amp_env_decay_time", 0x2E),
	level("amp_env_sustain_level", 0x2F),
	level("amp_env_release_time", 0x30),
	toggle("portamento_switch", 0x31),
	level("portamento_time", 0x32),
	toggle("legato_switch", 0x33),
	octaveShift("octave_shift", 0x34),
	param("pitch_bend_range_up", 0x35, 0, 24),
	param("pitch_bend_range_down", 0x36, 0, 24),
	sens("lfo_pitch_modulation_control", 0x38),
	sens("lfo_filter_modulation_control", 0x39),
	sens("lfo_amp_modulation_control", 0x3A),
	sens("lfo_rate_modulation_control", 0x3B),
)
