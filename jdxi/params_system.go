package jdxi

var setupSchema = newSchema("Setup", 0x3A,
	level("program_bank_select_msb", 0x06),
	level("program_bank_select_lsb", 0x07),
	level("program_number", 0x08),
)

var systemCommon = newSchema("System Common", 0x2B,
	// Tenths of a cent.
	nibbles("master_tune", 0x00, 4, -1000, 1000, 1024),
	coarseTune("master_key_shift", 0x04),
	level("master_level", 0x05),
	param("program_control_channel", 0x11, 0, 16),
	toggle("receive_program_change", 0x29),
	toggle("receive_bank_select", 0x2A),
)

var systemController = newSchema("System Controller", 0x11,
	toggle("transmit_program_change", 0x00),
	toggle("transmit_bank_select", 0x01),
	level("keyboard_velocity", 0x02),
	Descriptor{Name: "keyboard_velocity_curve", Offset: 0x03, Size: 1, Min: 1, Max: 3, Labels: []string{"LIGHT", "MEDIUM", "HEAVY"}},
	centered("keyboard_velocity_curve_offset", 0x04, -10, 9),
)
