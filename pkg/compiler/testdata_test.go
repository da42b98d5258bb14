package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/nattd/pkg/catalog"
	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
)

const testCatalogJSON = `{
  "system_config": {
    "recommended_settings": {
      "name": "Recommended Settings",
      "apps": {
        "set_hostname": {
          "name": "Set Hostname",
          "description": "Set a new hostname for your system",
          "command": "hostnamectl set-hostname"
        }
      }
    },
    "useful_repos": {
      "name": "Useful Repositories",
      "apps": {
        "enable_rpmfusion": {
          "name": "Enable RPM Fusion",
          "description": "Enable RPM Fusion repositories",
          "command": [
            "dnf -y install https://mirrors.rpmfusion.org/free/fedora/rpmfusion-free-release-$(rpm -E %fedora).noarch.rpm",
            "dnf -y group update core"
          ]
        },
        "enable_nvidia_driver": {
          "name": "NVIDIA Driver",
          "description": "Install the NVIDIA driver",
          "command": "dnf -y install akmod-nvidia"
        }
      }
    },
    "multimedia_codecs": {
      "name": "Multimedia Codecs",
      "apps": {
        "install_multimedia_codecs": {
          "name": "Multimedia Codecs",
          "description": "Install multimedia codecs",
          "command": "dnf -y group install multimedia"
        },
        "install_intel_codecs": {
          "name": "Intel Codecs",
          "description": "Install the Intel media driver",
          "command": "dnf -y install intel-media-driver"
        },
        "install_nvidia_codecs": {
          "name": "NVIDIA Codecs",
          "description": "Install NVIDIA VA-API support",
          "command": "dnf -y install libva-nvidia-driver"
        }
      }
    }
  },
  "essential_apps": {
    "name": "Essential Applications",
    "apps": [
      {"id": "git", "name": "Git", "description": "Version control", "command": "dnf -y install git"}
    ]
  },
  "internet_apps": {
    "browsers": {
      "name": "Web Browsers",
      "apps": {
        "brave": {
          "name": "Brave",
          "description": "Privacy-focused browser",
          "installation_types": {
            "flatpak": {"name": "Flatpak", "command": "flatpak install -y flathub com.brave.Browser"},
            "dnf": {"name": "DNF", "command": ["dnf -y install dnf-plugins-core", "dnf -y install brave-browser"]}
          }
        }
      }
    }
  },
  "customization": {
    "name": "Customization",
    "apps": {
      "install_google_fonts": {
        "name": "Google Fonts",
        "description": "Install Google fonts",
        "command": ["echo \"Installing fonts\"", "dnf -y install google-roboto-fonts"]
      }
    }
  },
  "advanced_settings": {
    "system_settings": {
      "name": "System Settings",
      "apps": {
        "extra_swap_space": {
          "name": "Extra Swap Space",
          "description": "Add a swap file",
          "command": [
            "fallocate -l SELECTEDSWAPSIZE /swapfile",
            "chmod 600 /swapfile",
            "cat <<EOF >> /etc/fstab\n/swapfile none swap sw 0 0\nEOF"
          ]
        }
      }
    }
  }
}`

const (
	pathHostname     = "system_config/recommended_settings/set_hostname"
	pathRPMFusion    = "system_config/useful_repos/enable_rpmfusion"
	pathNvidiaDriver = "system_config/useful_repos/enable_nvidia_driver"
	pathCodecs       = "system_config/multimedia_codecs/install_multimedia_codecs"
	pathIntelCodecs  = "system_config/multimedia_codecs/install_intel_codecs"
	pathNvidiaCodecs = "system_config/multimedia_codecs/install_nvidia_codecs"
	pathGit          = "essential_apps/essential_apps/git"
	pathBrave        = "internet_apps/browsers/brave"
	pathFonts        = "customization/customization/install_google_fonts"
	pathSwap         = "advanced_settings/system_settings/extra_swap_space"
)

func testTree(t *testing.T) *selection.Tree {
	t.Helper()
	cat, err := catalog.NewLoader(logging.Discard()).Parse("fedora", []byte(testCatalogJSON))
	require.NoError(t, err)
	return selection.New(cat)
}

func mustSelect(t *testing.T, tree *selection.Tree, path string) *selection.Entry {
	t.Helper()
	require.NoError(t, tree.Select(path, ""))
	return tree.Find(path)
}

func newTestCompiler(mode OutputMode) *Compiler {
	return New(Options{Mode: mode, Logger: logging.Discard()})
}
