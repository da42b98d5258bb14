package profiles

// BuiltIn returns the profiles shipped with the binary. The selections
// refer to the embedded fedora catalog.
func BuiltIn() []Profile {
	return []Profile{
		{
			ID:          "builtin-essentials",
			Name:        "Essentials",
			Description: "Recommended settings and everyday command line tools",
			IsBuiltIn:   true,
			Distro:      "fedora",
			OutputMode:  "quiet",
			Selections: []string{
				"system_config/recommended_settings/speed_up_dnf",
				"system_config/recommended_settings/enable_fstrim",
				"system_config/recommended_settings/update_firmware",
				"essential_apps/essential_apps/git",
				"essential_apps/essential_apps/htop",
				"essential_apps/essential_apps/unzip_p7zip",
				"essential_apps/essential_apps/fastfetch",
			},
		},
		{
			ID:          "builtin-multimedia",
			Name:        "Multimedia Workstation",
			Description: "Codecs, players and editing tools",
			IsBuiltIn:   true,
			Distro:      "fedora",
			OutputMode:  "quiet",
			Selections: []string{
				"system_config/recommended_settings/speed_up_dnf",
				"system_config/multimedia_codecs/install_multimedia_codecs",
				"multimedia_apps/players/vlc:flatpak",
				"multimedia_apps/players/mpv",
				"multimedia_apps/editing/gimp",
				"multimedia_apps/editing/obs_studio",
				"customization/customization/install_google_fonts",
			},
		},
		{
			ID:          "builtin-gaming",
			Name:        "Gaming Rig",
			Description: "Launchers, performance tools and the codecs games need",
			IsBuiltIn:   true,
			Distro:      "fedora",
			OutputMode:  "quiet",
			Selections: []string{
				"system_config/recommended_settings/speed_up_dnf",
				"system_config/multimedia_codecs/install_multimedia_codecs",
				"gaming_apps/launchers/steam:dnf",
				"gaming_apps/launchers/lutris",
				"gaming_apps/tools/gamemode",
				"gaming_apps/tools/mangohud",
			},
		},
	}
}

// FindBuiltIn returns the built-in profile with the given ID or name.
func FindBuiltIn(nameOrID string) (Profile, bool) {
	for _, p := range BuiltIn() {
		if p.ID == nameOrID || p.Name == nameOrID {
			return p, true
		}
	}
	return Profile{}, false
}
