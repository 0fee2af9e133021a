package view

// defaultIcon is shown for condition codes the provider adds after this table
// was written.
const defaultIcon = "fas fa-cloud"

// conditionIcons maps WeatherAPI.com condition codes to Font Awesome classes.
var conditionIcons = map[int]string{
	1000: "fas fa-sun",
	1003: "fas fa-cloud-sun",
	1006: "fas fa-cloud",
	1009: "fas fa-cloud",
	1030: "fas fa-smog",
	1063: "fas fa-cloud-rain",
	1066: "fas fa-snowflake",
	1069: "fas fa-cloud-rain",
	1072: "fas fa-cloud-rain",
	1087: "fas fa-bolt",
	1114: "fas fa-snowflake",
	1117: "fas fa-snowflake",
	1135: "fas fa-smog",
	1147: "fas fa-smog",
	1150: "fas fa-cloud-rain",
	1153: "fas fa-cloud-rain",
	1168: "fas fa-cloud-rain",
	1171: "fas fa-cloud-rain",
	1180: "fas fa-cloud-rain",
	1183: "fas fa-cloud-rain",
	1186: "fas fa-cloud-sun-rain",
	1189: "fas fa-cloud-rain",
	1192: "fas fa-cloud-rain",
	1195: "fas fa-cloud-rain",
	1198: "fas fa-cloud-rain",
	1201: "fas fa-cloud-rain",
	1204: "fas fa-cloud-rain",
	1207: "fas fa-cloud-rain",
	1210: "fas fa-snowflake",
	1213: "fas fa-snowflake",
	1216: "fas fa-snowflake",
	1219: "fas fa-snowflake",
	1222: "fas fa-snowflake",
	1225: "fas fa-snowflake",
	1237: "fas fa-snowflake",
	1240: "fas fa-cloud-rain",
	1243: "fas fa-cloud-rain",
	1246: "fas fa-cloud-rain",
	1249: "fas fa-cloud-rain",
	1252: "fas fa-cloud-rain",
	1255: "fas fa-snowflake",
	1258: "fas fa-snowflake",
	1261: "fas fa-snowflake",
	1264: "fas fa-snowflake",
	1273: "fas fa-bolt",
	1276: "fas fa-bolt",
	1279: "fas fa-bolt",
	1282: "fas fa-bolt",
}

// Icon returns the icon class for a condition code.
func Icon(code int) string {
	if icon, ok := conditionIcons[code]; ok {
		return icon
	}
	return defaultIcon
}
